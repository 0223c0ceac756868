// Copyright (c) 2026 Kiram Dashboard. All rights reserved.
// Author: dwikiramdani

package pointer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dwikiramdani/kiramdashboard/pkg/pointer"
)

func TestPointerHelpers(t *testing.T) {
	assert.Equal(t, "x", *pointer.To("x"))
	assert.Equal(t, "", pointer.Val[string](nil))
	assert.Equal(t, "fallback", pointer.Fallback(nil, "fallback"))
	assert.Equal(t, "set", pointer.Fallback(pointer.To("set"), "fallback"))
}

func TestNonZero(t *testing.T) {
	assert.Equal(t, "current", pointer.NonZero(nil, "current"))
	assert.Equal(t, "current", pointer.NonZero(pointer.To(""), "current"))
	assert.Equal(t, "next", pointer.NonZero(pointer.To("next"), "current"))
	assert.Equal(t, false, pointer.NonZero(pointer.To(false), false))
}
