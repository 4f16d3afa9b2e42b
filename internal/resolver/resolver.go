package resolver

import (
	"regexp"
	"strings"

	"github.com/akolanti/DocQueryAPI/internal/domain/docmodel"
	"github.com/akolanti/DocQueryAPI/internal/faults"
)

// Candidate is one storage key + stage pairing worth probing. Candidates are
// ephemeral - built per resolution attempt, never persisted.
type Candidate struct {
	Identifier     string
	StageReference string
}

// Request carries everything the caller knows about the document. Identifier
// and StageReference come from the caller verbatim, Doc is the row looked up
// by fileId when one exists.
type Request struct {
	Identifier     string
	StageReference string
	Doc            *docmodel.Document
	DefaultStage   string
}

var (
	identifierPattern = regexp.MustCompile(`^[\w.\-/ ]+$`)
	stagePattern      = regexp.MustCompile(`^@?[\w.]+$`)
	// "<uuid>-<restOfFilename>", the flat combined layout old uploads used
	uuidNamePattern = regexp.MustCompile(`^([0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12})-(.+)$`)
)

// ValidateIdentifier enforces the identifier grammar and refuses path
// traversal segments. Violations are client errors.
func ValidateIdentifier(id string) error {
	if id == "" || !identifierPattern.MatchString(id) {
		return faults.ClientInputf("identifier contains invalid characters")
	}
	for _, seg := range strings.Split(id, "/") {
		if seg == ".." {
			return faults.ClientInputf("identifier must not contain path traversal segments")
		}
	}
	return nil
}

// NormalizeStageReference validates the stage grammar and prefixes the
// container marker when the caller left it off.
func NormalizeStageReference(ref string) (string, error) {
	if !stagePattern.MatchString(ref) {
		return "", faults.ClientInputf("stage reference contains invalid characters")
	}
	if !strings.HasPrefix(ref, "@") {
		ref = "@" + ref
	}
	return ref, nil
}

// CandidatesFor builds the ordered, deduplicated probe list. The ordering
// covers every layout the storage has used over time: the key as given, the
// flat legacy combined name, and the nested canonical name. New documents
// resolve on the first candidate; only pre-migration uploads need the rest.
func CandidatesFor(req Request) ([]Candidate, error) {
	suppliedStage := ""
	if req.StageReference != "" {
		normalized, err := NormalizeStageReference(req.StageReference)
		if err != nil {
			return nil, err
		}
		suppliedStage = normalized
	}

	docStage := ""
	if req.Doc != nil {
		docStage = req.Doc.StageReference
	}
	primaryStage := firstNonEmpty(suppliedStage, docStage, req.DefaultStage)
	knownDocStage := firstNonEmpty(docStage, primaryStage)

	var out []Candidate
	seen := make(map[string]bool)
	add := func(stageRef, identifier string) {
		if identifier == "" || stageRef == "" {
			return
		}
		key := stageRef + "::" + identifier
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, Candidate{Identifier: identifier, StageReference: stageRef})
	}

	if req.Identifier != "" {
		if err := ValidateIdentifier(req.Identifier); err != nil {
			return nil, err
		}
		segments := strings.Split(req.Identifier, "/")
		last := segments[len(segments)-1]

		// 1. exactly what the caller asked for
		add(primaryStage, req.Identifier)

		// 2. folder-style key missing its combined leaf
		if len(segments) > 1 {
			fid, fname := "", ""
			if req.Doc != nil {
				fid, fname = req.Doc.FileId, req.Doc.Filename
			}
			if fid == "" || fname == "" {
				fid = segments[len(segments)-2]
				fname = segments[len(segments)-1]
			}
			combined := fid + "-" + fname
			if last != combined {
				add(primaryStage, req.Identifier+"/"+combined)
			}
		}

		// 3. flat combined leaf that migrated to the nested layout
		if m := uuidNamePattern.FindStringSubmatch(last); m != nil {
			id, rest := m[1], m[2]
			add(primaryStage, id+"/"+rest)
			add(primaryStage, id+"/"+rest+"/"+id+"-"+rest)
		}
	}

	if req.Doc != nil {
		doc := req.Doc

		// 4. the committed stage path plus its legacy sibling
		if doc.StagePath != "" {
			add(knownDocStage, doc.StagePath)
			if doc.FileId != "" && doc.Filename != "" {
				add(knownDocStage, doc.StagePath+"/"+doc.FileId+"-"+doc.Filename)
			}
		}

		// 5. the canonical layout derived from identity alone
		if doc.FileId != "" && doc.Filename != "" {
			add(knownDocStage, doc.FileId+"/"+doc.Filename)
			add(knownDocStage, doc.FileId+"/"+doc.Filename+"/"+doc.FileId+"-"+doc.Filename)
		}
	}

	if len(out) == 0 {
		return nil, faults.ClientInputf("no usable storage candidates for the request")
	}
	return out, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
