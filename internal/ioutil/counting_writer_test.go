package ioutil_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/weburi/urlkit/internal/ioutil"
)

type errorWriter struct{}

var errWrite = errors.New("write failed")

func (errorWriter) Write([]byte) (int, error) { return 0, errWrite }

func TestCountingWriter_Write(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	cw := ioutil.GetCountingWriter(&buf)
	defer ioutil.FreeCountingWriter(cw)

	cw.WriteString("abc")   //nolint:errcheck
	cw.Fprint("-", 42)      //nolint:errcheck
	cw.Write([]byte("xyz")) //nolint:errcheck

	num, err := cw.Result()
	if err != nil {
		t.Fatalf("cw.Result() error = %v, want nil", err)
	}
	if want := "abc-42xyz"; buf.String() != want {
		t.Errorf("buf.String() = %q, want %q", buf.String(), want)
	}
	if num != len("abc-42xyz") {
		t.Errorf("cw.Result() num = %d, want %d", num, len("abc-42xyz"))
	}
}

func TestCountingWriter_StopsAfterError(t *testing.T) {
	t.Parallel()

	cw := ioutil.GetCountingWriter(errorWriter{})
	defer ioutil.FreeCountingWriter(cw)

	if _, err := cw.WriteString("abc"); !errors.Is(err, errWrite) {
		t.Fatalf("cw.WriteString() error = %v, want %v", err, errWrite)
	}
	// subsequent writes are short-circuited and report the first error
	if _, err := cw.Fprint("more"); !errors.Is(err, errWrite) {
		t.Errorf("cw.Fprint() error = %v, want %v", err, errWrite)
	}
	if _, err := cw.Result(); !errors.Is(err, errWrite) {
		t.Errorf("cw.Result() error = %v, want %v", err, errWrite)
	}
}

func TestCountingWriter_PoolResets(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	cw := ioutil.GetCountingWriter(&buf)
	cw.WriteString("abc") //nolint:errcheck
	ioutil.FreeCountingWriter(cw)

	cw2 := ioutil.GetCountingWriter(&buf)
	defer ioutil.FreeCountingWriter(cw2)
	if num, err := cw2.Result(); num != 0 || err != nil {
		t.Errorf("pooled writer Result() = %d, %v, want 0, nil after reset", num, err)
	}
}
