package session

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umeedfoundation/console/core/user"
)

func TestEncode_Schema(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	value, err := Encode(user.Identity{
		ID:          "2",
		Email:       "coordinator@umeed.org",
		FullName:    "Priya Sharma",
		Role:        user.RoleCoordinator,
		VolunteerID: "v1",
		CreatedAt:   time.Date(2024, 6, 1, 15, 30, 0, 0, ist),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"version": 1,
		"identity": {
			"id": "2",
			"email": "coordinator@umeed.org",
			"full_name": "Priya Sharma",
			"role": "coordinator",
			"volunteer_id": "v1",
			"created_at": "2024-06-01T10:00:00Z"
		}
	}`, value)
}

func TestDecode_RestoreError(t *testing.T) {
	_, err := Decode(`[]`)
	var rErr *RestoreError
	require.True(t, errors.As(err, &rErr))
	assert.Equal(t, "malformed value", rErr.Reason)

	_, err = Decode(`{"version":0,"identity":{"id":"1","email":"a@b.c","role":"admin"}}`)
	require.True(t, errors.As(err, &rErr))
	assert.Contains(t, err.Error(), "unsupported version 0")
}
