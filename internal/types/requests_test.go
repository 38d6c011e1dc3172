package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpdateMatchStatusRequest_Validate(t *testing.T) {
	for _, s := range []string{"new", "viewed", "saved", "applied", "dismissed"} {
		req := UpdateMatchStatusRequest{Status: s}
		assert.NoError(t, req.Validate(), s)
	}

	for _, s := range []string{"", "archived", "SAVED"} {
		req := UpdateMatchStatusRequest{Status: s}
		assert.Error(t, req.Validate(), "%q should fail validation", s)
	}
}

func TestStatsRequest_Validate(t *testing.T) {
	assert.NoError(t, (&StatsRequest{}).Validate())
	assert.NoError(t, (&StatsRequest{SkillGapLimit: 5}).Validate())
	assert.NoError(t, (&StatsRequest{SkillGapLimit: 50}).Validate())
	assert.Error(t, (&StatsRequest{SkillGapLimit: 51}).Validate())
	assert.Error(t, (&StatsRequest{SkillGapLimit: -1}).Validate())
}
