package db_models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeedbackStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to FeedbackStatus
		ok       bool
	}{
		{FeedbackPending, FeedbackAcknowledged, true},
		{FeedbackPending, FeedbackResponded, true}, // acknowledged may be skipped
		{FeedbackAcknowledged, FeedbackResponded, true},
		{FeedbackAcknowledged, FeedbackPending, false},
		{FeedbackResponded, FeedbackPending, false},
		{FeedbackResponded, FeedbackAcknowledged, false},
		{FeedbackPending, FeedbackPending, false},
		{FeedbackPending, FeedbackStatus("archived"), false},
	}

	for _, c := range cases {
		assert.Equal(t, c.ok, c.from.CanTransitionTo(c.to), "%s -> %s", c.from, c.to)
	}
}

func TestMessageStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to MessageStatus
		ok       bool
	}{
		{MessageSent, MessageDelivered, true},
		{MessageSent, MessageRead, true},
		{MessageDelivered, MessageRead, true},
		{MessageRead, MessageDelivered, false},
		{MessageRead, MessageSent, false},
		{MessageDelivered, MessageDelivered, false},
	}

	for _, c := range cases {
		assert.Equal(t, c.ok, c.from.CanTransitionTo(c.to), "%s -> %s", c.from, c.to)
	}
}

func TestValidReportReason(t *testing.T) {
	for _, reason := range ReportReasons {
		assert.True(t, ValidReportReason(reason))
	}
	assert.False(t, ValidReportReason("Annoying"))
	assert.False(t, ValidReportReason(""))
	assert.False(t, ValidReportReason("spam")) // case sensitive
}

func TestReportOpen(t *testing.T) {
	assert.True(t, (&Report{Status: ReportPending}).Open())
	assert.False(t, (&Report{Status: ReportResolved}).Open())
	assert.False(t, (&Report{Status: ReportDismissed}).Open())
}

func TestFeedbackTypeValid(t *testing.T) {
	assert.True(t, TypeSuggestion.Valid())
	assert.True(t, TypeComplaint.Valid())
	assert.True(t, TypePraise.Valid())
	assert.False(t, FeedbackType("rant").Valid())
}
