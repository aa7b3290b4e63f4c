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
	insertJobStm = "INSERT INTO jobs (id, job_number, org_id, username, file_name, property_address, status, created_at, updated_at) VALUES ('%s', %d, '%s', '%s', '%s', '%s', '%s', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP);"
)

var _ = Describe("job store", Ordered, func() {
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
		It("successfully list all jobs ordered by number descending", func() {
			tx := gormdb.Exec(fmt.Sprintf(insertJobStm, uuid.NewString(), 10000, "org1", "user1", "Job_10000_24_Highway_Drive", "24 Highway Drive", "completed"))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertJobStm, uuid.NewString(), 10001, "org1", "user1", "Job_10001_88_Harbour_View", "88 Harbour View", "pending"))
			Expect(tx.Error).To(BeNil())

			jobs, err := s.Job().List(context.TODO(), store.NewJobQueryFilter())
			Expect(err).To(BeNil())
			Expect(jobs).To(HaveLen(2))
			Expect(jobs[0].JobNumber).To(Equal(10001))
			Expect(jobs[1].JobNumber).To(Equal(10000))
		})

		It("successfully list jobs filtered by org_id", func() {
			tx := gormdb.Exec(fmt.Sprintf(insertJobStm, uuid.NewString(), 10000, "org1", "user1", "Job_10000_24_Highway_Drive", "24 Highway Drive", "pending"))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertJobStm, uuid.NewString(), 10000, "org2", "user2", "Job_10000_5_Ocean_Street", "5 Ocean Street", "pending"))
			Expect(tx.Error).To(BeNil())

			jobs, err := s.Job().List(context.TODO(), store.NewJobQueryFilter().WithOrgID("org2"))
			Expect(err).To(BeNil())
			Expect(jobs).To(HaveLen(1))
			Expect(jobs[0].PropertyAddress).To(Equal("5 Ocean Street"))
		})

		It("successfully list jobs filtered by status", func() {
			tx := gormdb.Exec(fmt.Sprintf(insertJobStm, uuid.NewString(), 10000, "org1", "user1", "Job_10000_24_Highway_Drive", "24 Highway Drive", "completed"))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertJobStm, uuid.NewString(), 10001, "org1", "user1", "Job_10001_88_Harbour_View", "88 Harbour View", "in_progress"))
			Expect(tx.Error).To(BeNil())

			jobs, err := s.Job().List(context.TODO(), store.NewJobQueryFilter().WithStatus("in_progress"))
			Expect(err).To(BeNil())
			Expect(jobs).To(HaveLen(1))
			Expect(jobs[0].JobNumber).To(Equal(10001))
		})
	})

	Context("get", func() {
		It("successfully reads back a job", func() {
			id := uuid.NewString()
			tx := gormdb.Exec(fmt.Sprintf(insertJobStm, id, 10000, "org1", "user1", "Job_10000_24_Highway_Drive", "24 Highway Drive", "pending"))
			Expect(tx.Error).To(BeNil())

			job, err := s.Job().Get(context.TODO(), id)
			Expect(err).To(BeNil())
			Expect(job.JobNumber).To(Equal(10000))
			Expect(job.FileName).To(Equal("Job_10000_24_Highway_Drive"))
		})

		It("returns ErrRecordNotFound for a missing job", func() {
			_, err := s.Job().Get(context.TODO(), uuid.NewString())
			Expect(err).To(MatchError(store.ErrRecordNotFound))
		})
	})

	Context("create", func() {
		It("successfully creates a job and stamps timestamps", func() {
			job, err := s.Job().Create(context.TODO(), model.Job{
				ID:              uuid.NewString(),
				JobNumber:       10000,
				OrgID:           "org1",
				Username:        "user1",
				FileName:        "Job_10000_24_Highway_Drive",
				PropertyAddress: "24 Highway Drive",
				Status:          "pending",
			})
			Expect(err).To(BeNil())
			Expect(job.CreatedAt.IsZero()).To(BeFalse())
			Expect(job.UpdatedAt.IsZero()).To(BeFalse())
		})

		It("rejects a duplicate job number inside the same org", func() {
			_, err := s.Job().Create(context.TODO(), model.Job{
				ID:        uuid.NewString(),
				JobNumber: 10000,
				OrgID:     "org1",
				FileName:  "Job_10000_24_Highway_Drive",
				Status:    "pending",
			})
			Expect(err).To(BeNil())

			_, err = s.Job().Create(context.TODO(), model.Job{
				ID:        uuid.NewString(),
				JobNumber: 10000,
				OrgID:     "org1",
				FileName:  "Job_10000_5_Ocean_Street",
				Status:    "pending",
			})
			Expect(err).To(MatchError(store.ErrDuplicateKey))

			// same number in another org is fine
			_, err = s.Job().Create(context.TODO(), model.Job{
				ID:        uuid.NewString(),
				JobNumber: 10000,
				OrgID:     "org2",
				FileName:  "Job_10000_5_Ocean_Street",
				Status:    "pending",
			})
			Expect(err).To(BeNil())
		})
	})

	Context("update", func() {
		It("updates status and payloads and leaves omitted fields alone", func() {
			id := uuid.NewString()
			_, err := s.Job().Create(context.TODO(), model.Job{
				ID:              id,
				JobNumber:       10000,
				OrgID:           "org1",
				FileName:        "Job_10000_24_Highway_Drive",
				PropertyAddress: "24 Highway Drive",
				Status:          "pending",
			})
			Expect(err).To(BeNil())

			status := "in_progress"
			job, err := s.Job().Update(context.TODO(), id, &status, []byte(`{"stage":"inspection"}`), nil)
			Expect(err).To(BeNil())
			Expect(job.Status).To(Equal("in_progress"))
			Expect(string(job.Data)).To(Equal(`{"stage":"inspection"}`))
			Expect(job.PropertyAddress).To(Equal("24 Highway Drive"))

			job, err = s.Job().Update(context.TODO(), id, nil, nil, []byte(`["Job_10000_valuation_report.pdf"]`))
			Expect(err).To(BeNil())
			Expect(job.Status).To(Equal("in_progress"))
			Expect(string(job.Data)).To(Equal(`{"stage":"inspection"}`))
			Expect(string(job.Reports)).To(Equal(`["Job_10000_valuation_report.pdf"]`))
		})

		It("returns ErrRecordNotFound for a missing job", func() {
			status := "completed"
			_, err := s.Job().Update(context.TODO(), uuid.NewString(), &status, nil, nil)
			Expect(err).To(MatchError(store.ErrRecordNotFound))
		})
	})

	Context("next job number", func() {
		It("seeds at the base when the org has no jobs", func() {
			next, err := s.Job().NextJobNumber(context.TODO(), "org1", 10000)
			Expect(err).To(BeNil())
			Expect(next).To(Equal(10000))
		})

		It("continues from the highest number in the org", func() {
			tx := gormdb.Exec(fmt.Sprintf(insertJobStm, uuid.NewString(), 10007, "org1", "user1", "Job_10007_24_Highway_Drive", "24 Highway Drive", "completed"))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertJobStm, uuid.NewString(), 10012, "org2", "user2", "Job_10012_5_Ocean_Street", "5 Ocean Street", "pending"))
			Expect(tx.Error).To(BeNil())

			next, err := s.Job().NextJobNumber(context.TODO(), "org1", 10000)
			Expect(err).To(BeNil())
			Expect(next).To(Equal(10008))
		})
	})

	AfterEach(func() {
		gormdb.Exec("DELETE from jobs;")
	})
})
