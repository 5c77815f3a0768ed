package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsRefundType(t *testing.T) {
	assert.True(t, IsRefundType("Fee_Refunds"))
	assert.True(t, IsRefundType("Deposit_Refunds"))
	assert.False(t, IsRefundType("Standard"))
	assert.False(t, IsRefundType(""))
	assert.False(t, IsRefundType("fee_refunds"), "record types are case-sensitive in the source store")
}
