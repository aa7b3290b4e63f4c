package service

import (
	"fmt"

	"github.com/google/uuid"
)

type ErrResourceNotFound struct {
	error
}

func NewErrResourceNotFound(id string, resourceType string) *ErrResourceNotFound {
	return &ErrResourceNotFound{fmt.Errorf("%s %s not found", resourceType, id)}
}

func NewErrAssessmentNotFound(id uuid.UUID) *ErrResourceNotFound {
	return NewErrResourceNotFound(id.String(), "assessment")
}

func NewErrJobNotFound(id string) *ErrResourceNotFound {
	return NewErrResourceNotFound(id, "job")
}

type ErrAssessmentDuplicateName struct {
	error
}

func NewErrAssessmentDuplicateName(name string) *ErrAssessmentDuplicateName {
	return &ErrAssessmentDuplicateName{fmt.Errorf("assessment with name %s already exists", name)}
}

type ErrJobDuplicateNumber struct {
	error
}

func NewErrJobDuplicateNumber(number int) *ErrJobDuplicateNumber {
	return &ErrJobDuplicateNumber{fmt.Errorf("job number %d already exists", number)}
}

type ErrJobTerminalState struct {
	error
}

func NewErrJobTerminalState(id string, status string) *ErrJobTerminalState {
	return &ErrJobTerminalState{fmt.Errorf("job %s is %s and accepts no further updates", id, status)}
}
