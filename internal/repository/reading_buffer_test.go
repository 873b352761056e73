package repository

import (
	"testing"

	"hydraulic_dashboard/internal/models"
)

func TestReadingBuffer_AppendEvictsOldest(t *testing.T) {
	b := NewReadingBuffer(3)

	for i := 1; i <= 5; i++ {
		b.Append(models.Reading{Timestamp: int64(i)})
	}

	if b.Len() != 3 {
		t.Fatalf("len = %d, want 3", b.Len())
	}
	all := b.All()
	if all[0].Timestamp != 3 || all[2].Timestamp != 5 {
		t.Fatalf("buffer = %v, want timestamps 3..5", all)
	}
}

func TestReadingBuffer_Recent(t *testing.T) {
	b := NewReadingBuffer(10)
	for i := 1; i <= 6; i++ {
		b.Append(models.Reading{Timestamp: int64(i)})
	}

	got := b.Recent(3)
	if len(got) != 3 || got[0].Timestamp != 4 || got[2].Timestamp != 6 {
		t.Fatalf("Recent(3) = %v, want 4..6 oldest first", got)
	}

	// n <= 0 and n > len both return everything
	if got := b.Recent(0); len(got) != 6 {
		t.Fatalf("Recent(0) = %d entries, want 6", len(got))
	}
	if got := b.Recent(100); len(got) != 6 {
		t.Fatalf("Recent(100) = %d entries, want 6", len(got))
	}
}

func TestReadingBuffer_CopyOnRead(t *testing.T) {
	b := NewReadingBuffer(10)
	b.Append(models.Reading{Timestamp: 1, Pressure: 150})

	got := b.All()
	got[0].Pressure = 0
	if b.All()[0].Pressure != 150 {
		t.Fatal("All must return a copy")
	}
}

func TestReadingBuffer_Reset(t *testing.T) {
	b := NewReadingBuffer(10)
	b.Append(models.Reading{Timestamp: 1})
	b.Reset()
	if b.Len() != 0 {
		t.Fatalf("len after reset = %d, want 0", b.Len())
	}
	b.Append(models.Reading{Timestamp: 2})
	if b.Len() != 1 {
		t.Fatal("buffer unusable after reset")
	}
}

func TestReadingBuffer_DefaultCapacity(t *testing.T) {
	b := NewReadingBuffer(0)
	for i := 0; i < historyCapacity+50; i++ {
		b.Append(models.Reading{Timestamp: int64(i)})
	}
	if b.Len() != historyCapacity {
		t.Fatalf("len = %d, want capped at %d", b.Len(), historyCapacity)
	}
}
