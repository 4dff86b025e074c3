package render

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/matzehuels/sysarch/pkg/observability"
)

const tinySVG = `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"><rect width="10" height="10"/></svg>`

type convertRecorder struct {
	observability.NoopConverterHooks
	formats []string
	errs    []error
}

func (r *convertRecorder) OnConvert(_ context.Context, _, format string, _ time.Duration, err error) {
	r.formats = append(r.formats, format)
	r.errs = append(r.errs, err)
}

func TestToPDF_MissingConverter(t *testing.T) {
	if Available() {
		t.Skip("rsvg-convert installed")
	}
	rec := &convertRecorder{}
	observability.SetConverterHooks(rec)
	t.Cleanup(observability.Reset)

	_, err := ToPDF(context.Background(), []byte(tinySVG))
	if !errors.Is(err, ErrConverterMissing) {
		t.Errorf("ToPDF() error = %v, want ErrConverterMissing", err)
	}
	if len(rec.formats) != 1 || rec.formats[0] != "pdf" || !errors.Is(rec.errs[0], ErrConverterMissing) {
		t.Errorf("hooks saw formats=%v errs=%v", rec.formats, rec.errs)
	}
}

func TestToPNG_InvalidScale(t *testing.T) {
	if _, err := ToPNG(context.Background(), []byte(tinySVG), 0); err == nil {
		t.Error("ToPNG(scale=0) should fail")
	}
}

func TestToPNG_Scale(t *testing.T) {
	if !Available() {
		t.Skip("rsvg-convert not installed")
	}
	png, err := ToPNG(context.Background(), []byte(tinySVG), 2)
	if err != nil {
		t.Fatalf("ToPNG() error: %v", err)
	}
	if len(png) < 8 || string(png[1:4]) != "PNG" {
		t.Error("ToPNG() output is not a PNG")
	}
}

func TestToPNG_Canceled(t *testing.T) {
	if !Available() {
		t.Skip("rsvg-convert not installed")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ToPNG(ctx, []byte(tinySVG), 2); err == nil {
		t.Error("ToPNG() with a canceled context should fail")
	}
}
