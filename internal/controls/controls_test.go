package controls

import (
	"errors"
	"testing"
)

func noop(string) (string, error) { return "", nil }

func TestRegisterAndInvoke(t *testing.T) {
	b := NewBindings()
	var got string
	b.Register("color", "hex color", func(arg string) (string, error) {
		got = arg
		return "color=" + arg, nil
	})

	out, err := b.Invoke("color", "#ff0000")
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	if got != "#ff0000" {
		t.Errorf("Expected action arg '#ff0000', got '%s'", got)
	}
	if out != "color=#ff0000" {
		t.Errorf("Expected 'color=#ff0000', got '%s'", out)
	}
}

func TestAvailableIsSorted(t *testing.T) {
	b := NewBindings()
	b.Register("texture", "", noop)
	b.Register("arrangement", "", noop)
	b.Register("lighting", "", noop)

	names := b.Available()
	want := []string{"arrangement", "lighting", "texture"}
	if len(names) != len(want) {
		t.Fatalf("Expected %d controls, got %d", len(want), len(names))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Expected '%s' at %d, got '%s'", want[i], i, names[i])
		}
	}
}

func TestInvokeUnknown(t *testing.T) {
	b := NewBindings()
	_, err := b.Invoke("warp", "")
	if !errors.Is(err, ErrUnknownControl) {
		t.Errorf("Expected ErrUnknownControl, got %v", err)
	}
}

func TestInvokePropagatesActionError(t *testing.T) {
	b := NewBindings()
	boom := errors.New("boom")
	b.Register("fail", "", func(string) (string, error) { return "", boom })

	if _, err := b.Invoke("fail", ""); !errors.Is(err, boom) {
		t.Errorf("Expected action error, got %v", err)
	}
}

func TestRegisterReplaces(t *testing.T) {
	b := NewBindings()
	b.Register("x", "first", func(string) (string, error) { return "1", nil })
	b.Register("x", "second", func(string) (string, error) { return "2", nil })

	out, err := b.Invoke("x", "")
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	if out != "2" {
		t.Errorf("Expected '2', got '%s'", out)
	}
	binding, ok := b.Lookup("x")
	if !ok {
		t.Fatal("Lookup should find x")
	}
	if binding.Usage != "second" {
		t.Errorf("Expected usage 'second', got '%s'", binding.Usage)
	}
	if len(b.Available()) != 1 {
		t.Errorf("Expected 1 control, got %d", len(b.Available()))
	}
}
