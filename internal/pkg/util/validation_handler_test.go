package util_test

import (
	"Ripple/internal/api/dto"
	"Ripple/internal/pkg/util"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateDTO_CreateGroupReq(t *testing.T) {
	valid := &dto.CreateGroupReq{
		Name:      "周末计划",
		CreatedBy: "9876543210",
	}
	assert.NoError(t, util.ValidateDTO(valid))

	missingName := &dto.CreateGroupReq{CreatedBy: "9876543210"}
	err := util.ValidateDTO(missingName)
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "Name")
	}

	missingCreator := &dto.CreateGroupReq{Name: "周末计划"}
	assert.Error(t, util.ValidateDTO(missingCreator))
}
