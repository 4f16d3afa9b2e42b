package resolver

import (
	"testing"

	"github.com/akolanti/DocQueryAPI/internal/domain/docmodel"
	"github.com/akolanti/DocQueryAPI/internal/faults"
)

const testStage = "@pdf_documents"

func TestValidateIdentifier(t *testing.T) {
	tests := []struct {
		id      string
		wantErr bool
	}{
		{"abc/report.pdf", false},
		{"a1b2c3d4-e5f6-7890-abcd-1234567890ab-report.pdf", false},
		{"my file.pdf", false},
		{"../etc/passwd", true},
		{"folder/../secret", true},
		{"has;semicolon", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateIdentifier(tt.id)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateIdentifier(%q) err=%v, wantErr=%v", tt.id, err, tt.wantErr)
		}
		if err != nil && !faults.IsClientInput(err) {
			t.Errorf("ValidateIdentifier(%q) should be a client input error", tt.id)
		}
	}
}

func TestNormalizeStageReference(t *testing.T) {
	got, err := NormalizeStageReference("pdf_documents")
	if err != nil || got != "@pdf_documents" {
		t.Errorf("Missing marker should be prefixed, got %q err %v", got, err)
	}

	got, err = NormalizeStageReference("@already.prefixed")
	if err != nil || got != "@already.prefixed" {
		t.Errorf("Prefixed reference should pass through, got %q err %v", got, err)
	}

	if _, err := NormalizeStageReference("bad/stage"); !faults.IsClientInput(err) {
		t.Errorf("Slash in stage reference must be a client error, got %v", err)
	}
}

func TestCandidatesFor_VerbatimFirst(t *testing.T) {
	cands, err := CandidatesFor(Request{
		Identifier:   "some/folder/file.pdf",
		DefaultStage: testStage,
	})
	if err != nil {
		t.Fatalf("CandidatesFor failed: %v", err)
	}
	if cands[0].Identifier != "some/folder/file.pdf" || cands[0].StageReference != testStage {
		t.Errorf("First candidate must be the identifier verbatim, got %+v", cands[0])
	}
}

func TestCandidatesFor_UUIDLeafExpandsToNestedLayouts(t *testing.T) {
	id := "a1b2c3d4-e5f6-7890-abcd-1234567890ab-report.pdf"
	cands, err := CandidatesFor(Request{Identifier: id, DefaultStage: testStage})
	if err != nil {
		t.Fatalf("CandidatesFor failed: %v", err)
	}

	if len(cands) != 3 {
		t.Fatalf("Expected verbatim + canonical + nested-legacy, got %d: %+v", len(cands), cands)
	}

	canonical := "a1b2c3d4-e5f6-7890-abcd-1234567890ab/report.pdf"
	nested := canonical + "/" + id
	if cands[1].Identifier != canonical {
		t.Errorf("Second candidate got %q, want %q", cands[1].Identifier, canonical)
	}
	if cands[2].Identifier != nested {
		t.Errorf("Third candidate got %q, want %q", cands[2].Identifier, nested)
	}
}

func TestCandidatesFor_KnownDocumentOnly(t *testing.T) {
	doc := &docmodel.Document{
		FileId:         "file-123",
		Filename:       "report.pdf",
		StageReference: testStage,
	}

	cands, err := CandidatesFor(Request{Doc: doc, DefaultStage: testStage})
	if err != nil {
		t.Fatalf("CandidatesFor failed: %v", err)
	}

	if cands[0].Identifier != "file-123/report.pdf" {
		t.Errorf("Canonical fileId/filename must come first, got %q", cands[0].Identifier)
	}
	if cands[1].Identifier != "file-123/report.pdf/file-123-report.pdf" {
		t.Errorf("Nested legacy form got %q", cands[1].Identifier)
	}
}

func TestCandidatesFor_StagePathBeforeDerivedForms(t *testing.T) {
	doc := &docmodel.Document{
		FileId:         "file-123",
		Filename:       "report.pdf",
		StagePath:      "file-123/report_final.pdf",
		StageReference: testStage,
	}

	cands, err := CandidatesFor(Request{Doc: doc, DefaultStage: testStage})
	if err != nil {
		t.Fatalf("CandidatesFor failed: %v", err)
	}

	want := []string{
		"file-123/report_final.pdf",
		"file-123/report_final.pdf/file-123-report.pdf",
		"file-123/report.pdf",
		"file-123/report.pdf/file-123-report.pdf",
	}
	if len(cands) != len(want) {
		t.Fatalf("Got %d candidates: %+v", len(cands), cands)
	}
	for i, w := range want {
		if cands[i].Identifier != w {
			t.Errorf("Candidate %d got %q, want %q", i, cands[i].Identifier, w)
		}
	}
}

func TestCandidatesFor_NoDuplicates(t *testing.T) {
	doc := &docmodel.Document{
		FileId:         "file-123",
		Filename:       "report.pdf",
		StagePath:      "file-123/report.pdf", // same as the canonical derivation
		StageReference: testStage,
	}

	cands, err := CandidatesFor(Request{
		Identifier:   "file-123/report.pdf",
		Doc:          doc,
		DefaultStage: testStage,
	})
	if err != nil {
		t.Fatalf("CandidatesFor failed: %v", err)
	}

	seen := make(map[string]bool)
	for _, c := range cands {
		key := c.StageReference + "::" + c.Identifier
		if seen[key] {
			t.Errorf("Duplicate candidate %q", key)
		}
		seen[key] = true
	}
}

func TestCandidatesFor_FolderKeyGetsCombinedLeaf(t *testing.T) {
	cands, err := CandidatesFor(Request{
		Identifier:   "uploads/file-9/report.pdf",
		DefaultStage: testStage,
	})
	if err != nil {
		t.Fatalf("CandidatesFor failed: %v", err)
	}

	// id/name fall back to the last two path segments
	want := "uploads/file-9/report.pdf/file-9-report.pdf"
	found := false
	for _, c := range cands {
		if c.Identifier == want {
			found = true
		}
	}
	if !found {
		t.Errorf("Missing legacy combined candidate %q in %+v", want, cands)
	}
}

func TestCandidatesFor_SuppliedStageWins(t *testing.T) {
	doc := &docmodel.Document{FileId: "f", Filename: "a.pdf", StageReference: "@doc_stage"}
	cands, err := CandidatesFor(Request{
		Identifier:     "a.pdf",
		StageReference: "caller_stage",
		Doc:            doc,
		DefaultStage:   testStage,
	})
	if err != nil {
		t.Fatalf("CandidatesFor failed: %v", err)
	}
	if cands[0].StageReference != "@caller_stage" {
		t.Errorf("Caller stage must win for the verbatim candidate, got %q", cands[0].StageReference)
	}
}

func TestCandidatesFor_NothingUsable(t *testing.T) {
	_, err := CandidatesFor(Request{DefaultStage: testStage})
	if !faults.IsClientInput(err) {
		t.Errorf("Empty request must fail as a client error, got %v", err)
	}
}
