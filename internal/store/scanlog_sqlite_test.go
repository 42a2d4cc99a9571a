package store

import (
	"context"
	"testing"

	"stocktake-cli/internal/model"
)

func TestScanlogAppendAndRead(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	events := []model.ScanEvent{
		{Source: model.ScanSourceWedge, Code: "12345", Action: "resolve"},
		{Source: model.ScanSourceWedge, Code: "12345", ItemID: 1, Action: "create"},
		{Source: model.ScanSourceCamera, Code: "99999", ItemID: 2, Action: "resolve"},
	}
	for _, ev := range events {
		if err := s.AppendScanEvent(ctx, ev); err != nil {
			t.Fatalf("AppendScanEvent: %v", err)
		}
	}

	got, err := s.ReadScanEvents(ctx, 0)
	if err != nil {
		t.Fatalf("ReadScanEvents: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 events, got %d", len(got))
	}
	// Newest first.
	if got[0].Code != "99999" || got[0].Source != model.ScanSourceCamera {
		t.Fatalf("expected newest event first, got %+v", got[0])
	}
	if got[2].Action != "resolve" || got[2].ItemID != 0 {
		t.Fatalf("expected oldest resolve event last, got %+v", got[2])
	}
	for _, ev := range got {
		if ev.TS.IsZero() {
			t.Fatalf("expected a timestamp on %+v", ev)
		}
	}
}

func TestScanlogLimit(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := s.AppendScanEvent(ctx, model.ScanEvent{Source: model.ScanSourceManual, Action: "create", ItemID: int64(i + 1)}); err != nil {
			t.Fatalf("AppendScanEvent: %v", err)
		}
	}
	got, err := s.ReadScanEvents(ctx, 2)
	if err != nil {
		t.Fatalf("ReadScanEvents: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}
	if got[0].ItemID != 5 || got[1].ItemID != 4 {
		t.Fatalf("expected the two newest events, got %+v", got)
	}
}

func TestScanlogEmpty(t *testing.T) {
	s := testStore(t)
	got, err := s.ReadScanEvents(context.Background(), 10)
	if err != nil {
		t.Fatalf("ReadScanEvents: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no events, got %+v", got)
	}
}
