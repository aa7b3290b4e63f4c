package store_test

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hammad983ae/sustaino-sub007/internal/config"
	"github.com/hammad983ae/sustaino-sub007/internal/store"
	"github.com/hammad983ae/sustaino-sub007/internal/store/model"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

const (
	insertAssessmentStm = "INSERT INTO assessments (id, created_at, name, org_id, username) VALUES ('%s', CURRENT_TIMESTAMP, '%s', '%s', '%s');"
	insertSnapshotStm   = "INSERT INTO snapshots (created_at, report, assessment_id) VALUES (CURRENT_TIMESTAMP, '%s', '%s');"
)

var _ = Describe("assessment store", Ordered, func() {
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

	Context("list", func() {
		It("successfully list all assessments", func() {
			tx := gormdb.Exec(fmt.Sprintf(insertAssessmentStm, uuid.New(), "assessment1", "org1", "user1"))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertAssessmentStm, uuid.New(), "assessment2", "org1", "user2"))
			Expect(tx.Error).To(BeNil())

			assessments, err := s.Assessment().List(context.TODO(), store.NewAssessmentQueryFilter())
			Expect(err).To(BeNil())
			Expect(assessments).To(HaveLen(2))
		})

		It("successfully list assessments filtered by org_id", func() {
			tx := gormdb.Exec(fmt.Sprintf(insertAssessmentStm, uuid.New(), "assessment1", "org1", "user1"))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertAssessmentStm, uuid.New(), "assessment2", "org2", "user2"))
			Expect(tx.Error).To(BeNil())

			assessments, err := s.Assessment().List(context.TODO(), store.NewAssessmentQueryFilter().WithOrgID("org1"))
			Expect(err).To(BeNil())
			Expect(assessments).To(HaveLen(1))
			Expect(assessments[0].Name).To(Equal("assessment1"))
		})

		It("successfully list assessments filtered by name", func() {
			tx := gormdb.Exec(fmt.Sprintf(insertAssessmentStm, uuid.New(), "24 Highway Drive assessment", "org1", "user1"))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertAssessmentStm, uuid.New(), "5 Ocean Street assessment", "org1", "user1"))
			Expect(tx.Error).To(BeNil())

			assessments, err := s.Assessment().List(context.TODO(), store.NewAssessmentQueryFilter().WithNameLike("Highway"))
			Expect(err).To(BeNil())
			Expect(assessments).To(HaveLen(1))
			Expect(assessments[0].Name).To(Equal("24 Highway Drive assessment"))
		})
	})

	Context("get", func() {
		It("successfully reads back an assessment with its snapshots", func() {
			assessmentID := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertAssessmentStm, assessmentID, "assessment1", "org1", "user1"))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertSnapshotStm, `{"rev":1}`, assessmentID))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertSnapshotStm, `{"rev":2}`, assessmentID))
			Expect(tx.Error).To(BeNil())

			assessment, err := s.Assessment().Get(context.TODO(), assessmentID)
			Expect(err).To(BeNil())
			Expect(assessment.Name).To(Equal("assessment1"))
			Expect(assessment.Snapshots).To(HaveLen(2))
		})

		It("returns ErrRecordNotFound for a missing assessment", func() {
			_, err := s.Assessment().Get(context.TODO(), uuid.New())
			Expect(err).To(MatchError(store.ErrRecordNotFound))
		})
	})

	Context("create", func() {
		It("creates the assessment with its initial snapshot", func() {
			assessment, err := s.Assessment().Create(context.TODO(), model.Assessment{
				ID:       uuid.New(),
				Name:     "assessment1",
				OrgID:    "org1",
				Username: "user1",
			}, []byte(`{"address":{"streetNumber":"24"}}`))
			Expect(err).To(BeNil())
			Expect(assessment.Snapshots).To(HaveLen(1))
			Expect(string(assessment.Snapshots[0].Report)).To(Equal(`{"address":{"streetNumber":"24"}}`))
		})

		It("rejects a duplicate name inside the same org", func() {
			_, err := s.Assessment().Create(context.TODO(), model.Assessment{
				ID:    uuid.New(),
				Name:  "assessment1",
				OrgID: "org1",
			}, []byte(`{}`))
			Expect(err).To(BeNil())

			_, err = s.Assessment().Create(context.TODO(), model.Assessment{
				ID:    uuid.New(),
				Name:  "assessment1",
				OrgID: "org1",
			}, []byte(`{}`))
			Expect(err).To(MatchError(store.ErrDuplicateKey))
		})
	})

	Context("update", func() {
		It("renames the assessment and appends a snapshot per report", func() {
			assessmentID := uuid.New()
			_, err := s.Assessment().Create(context.TODO(), model.Assessment{
				ID:    assessmentID,
				Name:  "assessment1",
				OrgID: "org1",
			}, []byte(`{"rev":1}`))
			Expect(err).To(BeNil())

			name := "renamed"
			assessment, err := s.Assessment().Update(context.TODO(), assessmentID, &name, []byte(`{"rev":2}`))
			Expect(err).To(BeNil())
			Expect(assessment.Name).To(Equal("renamed"))
			Expect(assessment.UpdatedAt).ToNot(BeNil())
			Expect(assessment.Snapshots).To(HaveLen(2))
		})

		It("returns ErrRecordNotFound for a missing assessment", func() {
			_, err := s.Assessment().Update(context.TODO(), uuid.New(), nil, []byte(`{}`))
			Expect(err).To(MatchError(store.ErrRecordNotFound))
		})
	})

	Context("delete", func() {
		It("removes the assessment", func() {
			assessmentID := uuid.New()
			_, err := s.Assessment().Create(context.TODO(), model.Assessment{
				ID:    assessmentID,
				Name:  "assessment1",
				OrgID: "org1",
			}, []byte(`{}`))
			Expect(err).To(BeNil())

			Expect(s.Assessment().Delete(context.TODO(), assessmentID)).To(BeNil())

			_, err = s.Assessment().Get(context.TODO(), assessmentID)
			Expect(err).To(MatchError(store.ErrRecordNotFound))
		})

		It("is a no-op for a missing assessment", func() {
			Expect(s.Assessment().Delete(context.TODO(), uuid.New())).To(BeNil())
		})
	})

	AfterEach(func() {
		gormdb.Exec("DELETE from snapshots;")
		gormdb.Exec("DELETE from assessments;")
	})
})
