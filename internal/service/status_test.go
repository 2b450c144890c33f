package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"approved", StatusApproved, true},
		{"pending_admin", StatusPendingAdmin, true},
		{"Confirmada", StatusApproved, true},
		{"Pendiente", StatusPendingAdmin, true},
		{"Cancelada", StatusCancelled, true},
		{"CheckIn", StatusCheckedIn, true},
		{"Aprobada", "", false},
		{"", "", false},
		{"whatever", "", false},
	}
	for _, tt := range tests {
		got, ok := NormalizeStatus(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestStatusEstadoMapping(t *testing.T) {
	assert.Equal(t, EstadoConfirmada, EstadoForStatus(StatusApproved))
	assert.Equal(t, EstadoPendiente, EstadoForStatus(StatusPendingAdmin))
	assert.Equal(t, StatusCompleted, StatusForEstado(EstadoCompletada))
	assert.Equal(t, StatusRejected, StatusForEstado(EstadoRechazada))
}

func TestCanTransition(t *testing.T) {
	allowed := [][2]string{
		{StatusPendingAdmin, StatusApproved},
		{StatusPendingAdmin, StatusRejected},
		{StatusPendingAdmin, StatusCancelled},
		{StatusApproved, StatusCancelled},
		{StatusApproved, StatusCheckedIn},
		{StatusCheckedIn, StatusCheckedOut},
		{StatusCheckedOut, StatusCompleted},
	}
	for _, tr := range allowed {
		assert.True(t, CanTransition(tr[0], tr[1]), "%s -> %s", tr[0], tr[1])
	}

	forbidden := [][2]string{
		{StatusPendingAdmin, StatusCheckedIn},
		{StatusPendingAdmin, StatusCompleted},
		{StatusApproved, StatusCompleted},
		{StatusCheckedIn, StatusCancelled},
		{StatusCheckedOut, StatusCancelled},
		{StatusRejected, StatusApproved},
		{StatusCancelled, StatusPendingAdmin},
		{StatusCompleted, StatusCheckedOut},
	}
	for _, tr := range forbidden {
		assert.False(t, CanTransition(tr[0], tr[1]), "%s -> %s", tr[0], tr[1])
	}
}
