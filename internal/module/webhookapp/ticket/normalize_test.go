package ticket

import "testing"

func TestNormalizeOne(t *testing.T) {
	t.Run("fully populated", func(t *testing.T) {
		artifact := NormalizeOne(RawTicket{
			TicketNumber: "TKT-1",
			Name:         "General Admission",
			Price:        &Price{Currency: "EUR", Amount: "10.50"},
			TicketPdfURL: "https://tickets.example.com/TKT-1.pdf",
		})

		if artifact.ID != "TKT-1" {
			t.Errorf("expected id 'TKT-1', got %q", artifact.ID)
		}
		if artifact.DisplayName != "General Admission" {
			t.Errorf("expected display name 'General Admission', got %q", artifact.DisplayName)
		}
		if artifact.FormattedPrice != "EUR 10.50" {
			t.Errorf("expected formatted price 'EUR 10.50', got %q", artifact.FormattedPrice)
		}
		if artifact.ArtifactURL != "https://tickets.example.com/TKT-1.pdf" {
			t.Errorf("unexpected artifact url %q", artifact.ArtifactURL)
		}
	})

	t.Run("missing fields get defaults", func(t *testing.T) {
		artifact := NormalizeOne(RawTicket{})

		if artifact.ID != "" {
			t.Errorf("expected empty id, got %q", artifact.ID)
		}
		if artifact.DisplayName != UnknownTicketName {
			t.Errorf("expected display name %q, got %q", UnknownTicketName, artifact.DisplayName)
		}
		if artifact.FormattedPrice != UnknownPrice {
			t.Errorf("expected formatted price %q, got %q", UnknownPrice, artifact.FormattedPrice)
		}
		if artifact.ArtifactURL != "" {
			t.Errorf("expected empty artifact url, got %q", artifact.ArtifactURL)
		}
	})

	t.Run("partial price is not formatted", func(t *testing.T) {
		artifact := NormalizeOne(RawTicket{
			Name:  "VIP",
			Price: &Price{Currency: "EUR"},
		})

		if artifact.FormattedPrice != UnknownPrice {
			t.Errorf("expected formatted price %q, got %q", UnknownPrice, artifact.FormattedPrice)
		}
	})
}

func TestNormalizeKeepsEveryEntry(t *testing.T) {
	raw := []RawTicket{
		{TicketNumber: "TKT-1", Name: "A"},
		{},
		{TicketNumber: "TKT-3"},
	}

	artifacts := Normalize(raw)

	if len(artifacts) != len(raw) {
		t.Fatalf("expected %d artifacts, got %d", len(raw), len(artifacts))
	}
	if artifacts[1].DisplayName != UnknownTicketName {
		t.Errorf("expected defaulted display name for empty ticket, got %q", artifacts[1].DisplayName)
	}
}
