package store

import (
	"gorm.io/gorm"
)

type BaseQuerier struct {
	QueryFn []func(tx *gorm.DB) *gorm.DB
}

type AssessmentQueryFilter BaseQuerier

func NewAssessmentQueryFilter() *AssessmentQueryFilter {
	return &AssessmentQueryFilter{QueryFn: make([]func(tx *gorm.DB) *gorm.DB, 0)}
}

func (qf *AssessmentQueryFilter) WithOrgID(orgID string) *AssessmentQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("org_id = ?", orgID)
	})
	return qf
}

func (qf *AssessmentQueryFilter) WithUsername(username string) *AssessmentQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("username = ?", username)
	})
	return qf
}

func (qf *AssessmentQueryFilter) WithNameLike(name string) *AssessmentQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("name LIKE ?", "%"+name+"%")
	})
	return qf
}

type JobQueryFilter BaseQuerier

func NewJobQueryFilter() *JobQueryFilter {
	return &JobQueryFilter{QueryFn: make([]func(tx *gorm.DB) *gorm.DB, 0)}
}

func (qf *JobQueryFilter) WithOrgID(orgID string) *JobQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("org_id = ?", orgID)
	})
	return qf
}

func (qf *JobQueryFilter) WithStatus(status string) *JobQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("status = ?", status)
	})
	return qf
}
