package service_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"taskboard/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalID_TriState(t *testing.T) {
	type payload struct {
		AssigneeID service.OptionalID `json:"assigneeId"`
	}

	var absent payload
	require.NoError(t, json.Unmarshal([]byte(`{}`), &absent))
	assert.False(t, absent.AssigneeID.Set)

	var null payload
	require.NoError(t, json.Unmarshal([]byte(`{"assigneeId": null}`), &null))
	assert.True(t, null.AssigneeID.Set)
	assert.Nil(t, null.AssigneeID.Value)

	var empty payload
	require.NoError(t, json.Unmarshal([]byte(`{"assigneeId": ""}`), &empty))
	assert.True(t, empty.AssigneeID.Set)
	assert.Nil(t, empty.AssigneeID.Value)

	id := uuid.New()
	var set payload
	require.NoError(t, json.Unmarshal([]byte(fmt.Sprintf(`{"assigneeId": %q}`, id)), &set))
	assert.True(t, set.AssigneeID.Set)
	require.NotNil(t, set.AssigneeID.Value)
	assert.Equal(t, id, *set.AssigneeID.Value)

	var garbage payload
	assert.Error(t, json.Unmarshal([]byte(`{"assigneeId": "not-a-uuid"}`), &garbage))
}
