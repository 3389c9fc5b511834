package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func TestDietPatch_Empty(t *testing.T) {
	assert.True(t, DietPatch{}.Empty())
	assert.False(t, DietPatch{IsOnDiet: ptr(false)}.Empty())
	assert.False(t, DietPatch{Name: ptr("")}.Empty())
}

func TestDietPatch_ApplyLeavesOmittedFields(t *testing.T) {
	d := &Diet{ID: "d1", Name: "Bulking", Description: "Eat a lot", DateHour: "2023-07-10"}

	DietPatch{IsOnDiet: ptr(true)}.Apply(d)

	assert.Equal(t, &Diet{ID: "d1", Name: "Bulking", Description: "Eat a lot", DateHour: "2023-07-10", IsOnDiet: true}, d)

	DietPatch{Name: ptr("Cutting"), Description: ptr("Eat less"), DateHour: ptr("2023-07-11"), IsOnDiet: ptr(false)}.Apply(d)

	assert.Equal(t, &Diet{ID: "d1", Name: "Cutting", Description: "Eat less", DateHour: "2023-07-11"}, d)
}
