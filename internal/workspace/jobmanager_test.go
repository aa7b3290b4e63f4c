package workspace

import (
	"context"
	"errors"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	api "github.com/hammad983ae/sustaino-sub007/api/v1alpha1"
	"github.com/hammad983ae/sustaino-sub007/internal/client"
	"github.com/hammad983ae/sustaino-sub007/internal/session"
)

var _ = Describe("job manager", func() {
	var (
		ctx    context.Context
		kv     *memKV
		remote *client.RemoteMock
		clock  *manualClock
		jm     *JobManager
	)

	BeforeEach(func() {
		ctx = context.Background()
		kv = newMemKV()
		clock = &manualClock{now: time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)}
		remote = &client.RemoteMock{
			IsAuthenticatedFunc: func(_ context.Context) bool { return false },
			CurrentUserFunc: func(_ context.Context) (api.User, error) {
				return api.User{}, errors.New("unauthenticated")
			},
			CreateJobFunc: func(_ context.Context, _ api.JobForm) error { return nil },
			UpdateJobFunc: func(_ context.Context, _ string, _ api.JobUpdate) error { return nil },
		}
		jm = NewJobManager(remote, kv, nil,
			WithJobNumberBase(10000),
			WithJobClock(clock),
			WithAutoSaveInterval(30*time.Second),
		)
	})

	Context("job creation", func() {
		It("issues strictly increasing job numbers", func() {
			var numbers []int
			for _, addr := range []string{"24 Highway Drive", "88 Harbour View Drive", "7 Ocean Parade"} {
				job, err := jm.CreateJob(ctx, addr)
				Expect(err).NotTo(HaveOccurred())
				numbers = append(numbers, job.JobNumber)
			}
			Expect(numbers).To(Equal([]int{10000, 10001, 10002}))
		})

		It("derives the remote record name from number and address", func() {
			_, err := jm.CreateJob(ctx, "24 Highway Drive")
			Expect(err).NotTo(HaveOccurred())

			calls := remote.CreateJobCalls()
			Expect(calls).To(HaveLen(1))
			Expect(calls[0].Form.FileName).To(Equal("Job_10000_24_Highway_Drive"))
			Expect(calls[0].Form.Status).To(Equal(api.JobStatusPending))
		})

		It("fails outward and keeps the number when the remote rejects", func() {
			remote.CreateJobFunc = func(_ context.Context, _ api.JobForm) error {
				return errors.New("job store down")
			}

			_, err := jm.CreateJob(ctx, "24 Highway Drive")
			Expect(err).To(HaveOccurred())
			Expect(jm.CurrentJob()).To(BeNil())

			remote.CreateJobFunc = func(_ context.Context, _ api.JobForm) error { return nil }
			job, err := jm.CreateJob(ctx, "24 Highway Drive")
			Expect(err).NotTo(HaveOccurred())
			Expect(job.JobNumber).To(Equal(10000))
		})
	})

	Context("autosave", func() {
		It("saves at most once per interval under rapid ticks", func() {
			_, err := jm.CreateJob(ctx, "24 Highway Drive")
			Expect(err).NotTo(HaveOccurred())

			for i := 0; i < 5; i++ {
				jm.autoSaveTick(ctx)
			}
			Expect(remote.UpdateJobCalls()).To(HaveLen(1))

			clock.Advance(31 * time.Second)
			jm.autoSaveTick(ctx)
			Expect(remote.UpdateJobCalls()).To(HaveLen(2))
		})

		It("stops ticking once the job is terminal", func() {
			_, err := jm.CreateJob(ctx, "24 Highway Drive")
			Expect(err).NotTo(HaveOccurred())
			Expect(jm.UpdateJobStatus(ctx, api.JobStatusCompleted)).To(Succeed())

			before := len(remote.UpdateJobCalls())
			clock.Advance(time.Minute)
			jm.autoSaveTick(ctx)
			Expect(remote.UpdateJobCalls()).To(HaveLen(before))
		})

		It("restarts cleanly and tears down", func() {
			jm.StartAutoSave(ctx)
			jm.StartAutoSave(ctx)
			jm.StopAutoSave()
			jm.StopAutoSave()
		})
	})

	Context("status transitions", func() {
		It("promotes a pending job on its first data write", func() {
			_, err := jm.CreateJob(ctx, "24 Highway Drive")
			Expect(err).NotTo(HaveOccurred())

			Expect(jm.UpdateJobData(ctx, map[string]any{"valuation": 1250000})).To(Succeed())
			Expect(jm.CurrentJob().Status).To(Equal(api.JobStatusInProgress))

			calls := remote.UpdateJobCalls()
			Expect(calls).To(HaveLen(1))
			Expect(*calls[0].Update.Status).To(Equal(api.JobStatusInProgress))
		})

		It("pushes envelopes decoupled from later merges", func() {
			_, err := jm.CreateJob(ctx, "24 Highway Drive")
			Expect(err).NotTo(HaveOccurred())

			jm.SaveJobProgress(ctx, JobProgress{Data: map[string]any{"stage": "inspection"}})
			Expect(jm.UpdateJobData(ctx, map[string]any{"stage": "report", "valuation": 1250000})).To(Succeed())

			calls := remote.UpdateJobCalls()
			Expect(calls).To(HaveLen(2))
			Expect(calls[0].Update.Data["stage"]).To(Equal("inspection"))
			Expect(calls[1].Update.Data["stage"]).To(Equal("report"))
		})

		It("refuses transitions out of a terminal state", func() {
			_, err := jm.CreateJob(ctx, "24 Highway Drive")
			Expect(err).NotTo(HaveOccurred())
			Expect(jm.FinalizeJob(ctx)).To(Succeed())

			Expect(errors.Is(jm.UpdateJobStatus(ctx, api.JobStatusFailed), ErrJobTerminal)).To(BeTrue())
			Expect(errors.Is(jm.UpdateJobData(ctx, map[string]any{"x": 1}), ErrJobTerminal)).To(BeTrue())
		})

		It("requires an active job", func() {
			Expect(errors.Is(jm.UpdateJobStatus(ctx, api.JobStatusCompleted), ErrNoActiveJob)).To(BeTrue())
			Expect(errors.Is(jm.UpdateJobData(ctx, map[string]any{"x": 1}), ErrNoActiveJob)).To(BeTrue())
		})
	})

	Context("reports", func() {
		It("requires job data", func() {
			_, err := jm.CreateJob(ctx, "24 Highway Drive")
			Expect(err).NotTo(HaveOccurred())

			_, err = jm.GenerateReports(ctx)
			Expect(errors.Is(err, ErrNoJobData)).To(BeTrue())
		})

		It("records deterministic artifact names", func() {
			_, err := jm.CreateJob(ctx, "24 Highway Drive")
			Expect(err).NotTo(HaveOccurred())
			Expect(jm.UpdateJobData(ctx, map[string]any{"valuation": 1250000})).To(Succeed())

			reports, err := jm.GenerateReports(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(reports).To(Equal([]string{
				"Job_10000_valuation_report.pdf",
				"Job_10000_assessment_summary.pdf",
			}))
			Expect(jm.CurrentJob().Reports).To(Equal(reports))
		})
	})

	Context("archive and hydrate", func() {
		It("round-trips a session through the local archive", func() {
			data := session.NewData(session.DemoUserID)
			data.ComponentData["repairs"] = session.NewComponentEntry("repairs", map[string]any{"totalCost": 8500}, clock.Now())
			data.AddressData = api.Address{StreetNumber: "24", StreetName: "Highway", StreetType: "Drive"}

			Expect(jm.ArchiveSession(ctx, data)).To(Succeed())
			Expect(jm.CurrentJob()).To(BeNil())

			keys, err := kv.Keys(ctx, archiveKeyPrefix)
			Expect(err).NotTo(HaveOccurred())
			Expect(keys).To(HaveLen(1))

			jobID := strings.TrimPrefix(keys[0], archiveKeyPrefix)
			restored, err := jm.HydrateSession(ctx, jobID)
			Expect(err).NotTo(HaveOccurred())
			Expect(restored.ComponentData).To(HaveKey("repairs"))
			Expect(restored.ComponentData["repairs"]["totalCost"]).To(Equal(float64(8500)))
			Expect(session.ComposedAddress(restored.AddressData)).To(Equal("24 Highway Drive"))
		})

		It("falls back to the remote job store", func() {
			payload := map[string]any{
				sessionPayloadKey: map[string]any{
					"userId": session.DemoUserID,
					"reportData": map[string]any{
						"summary": map[string]any{"v": 1},
					},
				},
			}
			remote.GetJobFunc = func(_ context.Context, id string) (*api.Job, error) {
				return &api.Job{ID: id, Data: payload}, nil
			}

			restored, err := jm.HydrateSession(ctx, "job-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(restored.ReportData).To(HaveKey("summary"))
		})

		It("reports a missing job", func() {
			remote.GetJobFunc = func(_ context.Context, id string) (*api.Job, error) {
				return nil, errors.New("not found")
			}

			_, err := jm.HydrateSession(ctx, "nope")
			Expect(errors.Is(err, ErrJobNotFound)).To(BeTrue())
		})
	})
})
