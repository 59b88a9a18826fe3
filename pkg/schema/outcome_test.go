package schema

import (
	"encoding/json"
	"testing"
)

func TestOutcomeFailChaining(t *testing.T) {
	out := NewOutcome()
	if !out.OK {
		t.Fatal("new outcome must start OK")
	}

	got := out.Fail("convert to size [%s]: %v", "100x100", "boom")
	if got != out {
		t.Fatal("Fail must return the receiver for chaining")
	}
	if out.OK {
		t.Fatal("Fail did not clear OK")
	}
	if out.ErrorMessage != "convert to size [100x100]: boom" {
		t.Fatalf("ErrorMessage = %q", out.ErrorMessage)
	}
}

func TestOutcomeDataAccessors(t *testing.T) {
	out := NewOutcome()
	out.SetData("filename", "20240307_abc.jpg")
	out.SetData("duration", 29)
	out.SetData("bitrate", int64(1024000))

	if got := out.GetString("filename"); got != "20240307_abc.jpg" {
		t.Errorf("GetString = %q", got)
	}
	if got := out.GetString("duration"); got != "" {
		t.Errorf("GetString on int = %q, want empty", got)
	}
	if got := out.GetInt("duration"); got != 29 {
		t.Errorf("GetInt = %d", got)
	}
	if got := out.GetInt("bitrate"); got != 1024000 {
		t.Errorf("GetInt on int64 = %d", got)
	}
	if got := out.GetInt("absent"); got != 0 {
		t.Errorf("GetInt on absent key = %d", got)
	}
}

func TestOutcomeIntSurvivesJSONRoundtrip(t *testing.T) {
	out := NewOutcome()
	out.SetData("duration", 29)

	data, err := json.Marshal(out)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Outcome
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	// JSON numbers decode as float64; GetInt hides that from callers.
	if got := back.GetInt("duration"); got != 29 {
		t.Fatalf("GetInt after roundtrip = %d", got)
	}
}

func TestOutcomeThumbnails(t *testing.T) {
	out := NewOutcome()
	if got := out.Thumbnails(); got != nil {
		t.Fatalf("Thumbnails on empty outcome = %v", got)
	}

	out.AddThumbnail(GeneratedFile{SizeKey: "100x100", Target: "/x/100x100_a.jpg"})
	out.AddThumbnail(GeneratedFile{SizeKey: "440x300", Target: "/x/440x300_a.jpg"})

	thumbs := out.Thumbnails()
	if len(thumbs) != 2 {
		t.Fatalf("thumbnails = %d, want 2", len(thumbs))
	}
	if thumbs[0].SizeKey != "100x100" || thumbs[1].SizeKey != "440x300" {
		t.Fatalf("thumbnail order = %s, %s", thumbs[0].SizeKey, thumbs[1].SizeKey)
	}
}
