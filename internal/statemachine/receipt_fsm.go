package statemachine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Henry-Tercero-MH/Generador-Facturas/internal/models"
	"github.com/looplab/fsm"
)

// Receipt events
const (
	EventVoid    = "void"
	EventRestore = "restore"
)

// ReceiptFSM wraps a receipt with its state machine
type ReceiptFSM struct {
	receipt *models.Receipt
	fsm     *fsm.FSM
	now     func() time.Time
}

// NewReceiptFSM creates a new receipt state machine
func NewReceiptFSM(receipt *models.Receipt) *ReceiptFSM {
	rfsm := &ReceiptFSM{
		receipt: receipt,
		now:     time.Now,
	}

	status := receipt.Status
	if status == "" {
		status = models.ReceiptStatusIssued
	}

	rfsm.fsm = fsm.NewFSM(
		status,
		fsm.Events{
			// issued → voided
			{Name: EventVoid, Src: []string{models.ReceiptStatusIssued}, Dst: models.ReceiptStatusVoided},

			// voided → issued
			{Name: EventRestore, Src: []string{models.ReceiptStatusVoided}, Dst: models.ReceiptStatusIssued},
		},
		fsm.Callbacks{
			"enter_" + models.ReceiptStatusVoided: func(_ context.Context, e *fsm.Event) {
				reason := ""
				if len(e.Args) > 0 {
					reason, _ = e.Args[0].(string)
				}
				now := rfsm.now().UTC()
				rfsm.receipt.VoidedAt = &now
				rfsm.receipt.VoidReason = &reason
			},
			"enter_" + models.ReceiptStatusIssued: func(_ context.Context, _ *fsm.Event) {
				rfsm.receipt.VoidedAt = nil
				rfsm.receipt.VoidReason = nil
			},
		},
	)

	return rfsm
}

// Void annuls an issued receipt, recording the reason
func (r *ReceiptFSM) Void(ctx context.Context, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return fmt.Errorf("a void reason is required")
	}
	if !r.receipt.MayVoid() {
		return fmt.Errorf("receipt cannot be voided in current state: %s", r.receipt.Status)
	}

	if err := r.fsm.Event(ctx, EventVoid, reason); err != nil {
		return fmt.Errorf("failed to void receipt: %w", err)
	}

	r.receipt.Status = r.fsm.Current()
	return nil
}

// Restore reissues a voided receipt
func (r *ReceiptFSM) Restore(ctx context.Context) error {
	if !r.receipt.MayRestore() {
		return fmt.Errorf("receipt cannot be restored in current state: %s", r.receipt.Status)
	}

	if err := r.fsm.Event(ctx, EventRestore); err != nil {
		return fmt.Errorf("failed to restore receipt: %w", err)
	}

	r.receipt.Status = r.fsm.Current()
	return nil
}

// Current returns the current state
func (r *ReceiptFSM) Current() string {
	return r.fsm.Current()
}

// Can checks if a transition is possible
func (r *ReceiptFSM) Can(event string) bool {
	return r.fsm.Can(event)
}
