package output

import (
	"context"
	"strings"
	"testing"
)

func TestPrinterWrites(t *testing.T) {
	var buf strings.Builder
	p := New(&buf)
	p.Print("a")
	p.Printf("%d", 1)
	p.Println("b")

	if got := buf.String(); got != "a1b\n" {
		t.Errorf("printer wrote %q", got)
	}
}

func TestWithPrinterRoundTrip(t *testing.T) {
	var buf strings.Builder
	ctx := WithPrinter(context.Background(), &buf)
	FromContext(ctx).Println("hello")

	if got := buf.String(); got != "hello\n" {
		t.Errorf("context printer wrote %q", got)
	}
}

func TestFromContextDefaultsToStdout(t *testing.T) {
	p := FromContext(context.Background())
	if p == nil || p.Writer() == nil {
		t.Fatal("FromContext() without printer returned unusable Printer")
	}
}
