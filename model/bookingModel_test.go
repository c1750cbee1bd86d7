package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ilya-noize/RentHub-sub001/model"
)

func TestParseBookingFilter(t *testing.T) {
	f, ok := model.ParseBookingFilter("")
	assert.True(t, ok)
	assert.Equal(t, model.FilterAll, f)

	for _, s := range []string{"ALL", "CURRENT", "PAST", "FUTURE", "WAITING", "REJECTED"} {
		f, ok := model.ParseBookingFilter(s)
		assert.True(t, ok, s)
		assert.Equal(t, model.BookingFilter(s), f)
	}

	for _, s := range []string{"APPROVED", "all", "UNSUPPORTED_STATUS"} {
		_, ok := model.ParseBookingFilter(s)
		assert.False(t, ok, s)
	}
}

func TestBookingStatusTerminal(t *testing.T) {
	assert.False(t, model.BookingWaiting.Terminal())
	assert.True(t, model.BookingApproved.Terminal())
	assert.True(t, model.BookingRejected.Terminal())
	assert.True(t, model.BookingCanceled.Terminal())
}
