package store_test

import (
	"context"

	"github.com/hammad983ae/sustaino-sub007/internal/config"
	"github.com/hammad983ae/sustaino-sub007/internal/store"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

var _ = Describe("kv store", Ordered, func() {
	var (
		s      store.Store
		gormdb *gorm.DB
	)

	BeforeAll(func() {
		cfg, err := config.New()
		Expect(err).To(BeNil())
		db, err := store.InitDB(cfg)
		Expect(err).To(BeNil())

		s = store.NewStore(db)
		gormdb = db
		Expect(s.InitialMigration()).To(BeNil())
	})

	AfterAll(func() {
		s.Close()
	})

	Context("get", func() {
		It("successfully reads back a stored value", func() {
			err := s.KV().Put(context.TODO(), "sustaino_unified_data_user1", []byte(`{"userId":"user1"}`))
			Expect(err).To(BeNil())

			value, err := s.KV().Get(context.TODO(), "sustaino_unified_data_user1")
			Expect(err).To(BeNil())
			Expect(string(value)).To(Equal(`{"userId":"user1"}`))
		})

		It("returns ErrRecordNotFound for a missing key", func() {
			_, err := s.KV().Get(context.TODO(), "sustaino_unified_data_nobody")
			Expect(err).To(MatchError(store.ErrRecordNotFound))
		})
	})

	Context("put", func() {
		It("overwrites an existing key", func() {
			err := s.KV().Put(context.TODO(), "sustaino_unified_data_user1", []byte(`{"rev":1}`))
			Expect(err).To(BeNil())
			err = s.KV().Put(context.TODO(), "sustaino_unified_data_user1", []byte(`{"rev":2}`))
			Expect(err).To(BeNil())

			value, err := s.KV().Get(context.TODO(), "sustaino_unified_data_user1")
			Expect(err).To(BeNil())
			Expect(string(value)).To(Equal(`{"rev":2}`))

			count := 0
			err = gormdb.Raw("SELECT COUNT(*) from kv_entries;").Scan(&count).Error
			Expect(err).To(BeNil())
			Expect(count).To(Equal(1))
		})
	})

	Context("delete", func() {
		It("removes the named keys and leaves the rest", func() {
			Expect(s.KV().Put(context.TODO(), "sustaino_unified_data_user1", []byte(`{}`))).To(BeNil())
			Expect(s.KV().Put(context.TODO(), "sustaino_unified_data_user1_backup", []byte(`{}`))).To(BeNil())
			Expect(s.KV().Put(context.TODO(), "sustaino_file_index", []byte(`[]`))).To(BeNil())

			err := s.KV().Delete(context.TODO(), "sustaino_unified_data_user1", "sustaino_unified_data_user1_backup")
			Expect(err).To(BeNil())

			_, err = s.KV().Get(context.TODO(), "sustaino_unified_data_user1")
			Expect(err).To(MatchError(store.ErrRecordNotFound))

			value, err := s.KV().Get(context.TODO(), "sustaino_file_index")
			Expect(err).To(BeNil())
			Expect(string(value)).To(Equal(`[]`))
		})

		It("is a no-op for missing keys", func() {
			Expect(s.KV().Delete(context.TODO(), "sustaino_report_data")).To(BeNil())
			Expect(s.KV().Delete(context.TODO())).To(BeNil())
		})
	})

	Context("keys", func() {
		It("lists keys by prefix in order", func() {
			Expect(s.KV().Put(context.TODO(), "sustaino_archived_job_b", []byte(`{}`))).To(BeNil())
			Expect(s.KV().Put(context.TODO(), "sustaino_archived_job_a", []byte(`{}`))).To(BeNil())
			Expect(s.KV().Put(context.TODO(), "sustaino_file_index", []byte(`[]`))).To(BeNil())

			keys, err := s.KV().Keys(context.TODO(), "sustaino_archived_job_")
			Expect(err).To(BeNil())
			Expect(keys).To(Equal([]string{"sustaino_archived_job_a", "sustaino_archived_job_b"}))
		})

		It("returns no keys for an unknown prefix", func() {
			keys, err := s.KV().Keys(context.TODO(), "sustaino_user_tracking_")
			Expect(err).To(BeNil())
			Expect(keys).To(BeEmpty())
		})
	})

	AfterEach(func() {
		gormdb.Exec("DELETE from kv_entries;")
	})
})
