package flow

import (
	"reflect"
	"testing"
)

func TestState_SetShallowMerge(t *testing.T) {
	st := NewState(map[string]any{"name": "a", "email": "a@b.co"})

	st.Set(map[string]any{"name": "b"})

	if st.String("name") != "b" {
		t.Errorf("name = %q, want b", st.String("name"))
	}
	if st.String("email") != "a@b.co" {
		t.Errorf("email = %q, want untouched a@b.co", st.String("email"))
	}
}

func TestState_VersionIncrements(t *testing.T) {
	st := NewState(nil)
	v0 := st.Version()

	st.SetValue("name", "x")
	if st.Version() != v0+1 {
		t.Errorf("version = %d, want %d", st.Version(), v0+1)
	}
	st.Set(map[string]any{"a": 1, "b": 2})
	if st.Version() != v0+2 {
		t.Errorf("version after merge = %d, want %d", st.Version(), v0+2)
	}
}

func TestState_StringListMutators(t *testing.T) {
	st := NewState(map[string]any{"qualifications": []string{"MBBS", "MD"}})
	before := st.Strings("qualifications")

	st.AppendString("qualifications", "FRCS")
	st.UpdateString("qualifications", 0, "MBChB")
	st.RemoveString("qualifications", 1)

	got := st.Strings("qualifications")
	want := []string{"MBChB", "FRCS"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("list = %v, want %v", got, want)
	}
	// Copy-on-write: the slice read before mutation must be unchanged.
	if !reflect.DeepEqual(before, []string{"MBBS", "MD"}) {
		t.Errorf("prior snapshot mutated: %v", before)
	}
}

func TestState_RemoveLastEntryPermitted(t *testing.T) {
	st := NewState(map[string]any{"qualifications": []string{"MBBS"}})

	st.RemoveString("qualifications", 0)

	if got := st.Strings("qualifications"); len(got) != 0 {
		t.Errorf("list = %v, want empty", got)
	}
}

func TestState_EntryMutators(t *testing.T) {
	st := NewState(map[string]any{"faqs": []Entry{{"question": "q1", "answer": "a1"}}})
	before := st.Entries("faqs")

	st.AppendEntry("faqs", Entry{"question": "q2", "answer": ""})
	st.UpdateEntry("faqs", 1, "answer", "a2")
	st.RemoveEntry("faqs", 0)

	got := st.Entries("faqs")
	if len(got) != 1 || got[0]["question"] != "q2" || got[0]["answer"] != "a2" {
		t.Errorf("entries = %v", got)
	}
	if before[0]["answer"] != "a1" {
		t.Errorf("prior snapshot mutated: %v", before)
	}
}

func TestState_OutOfRangeIgnored(t *testing.T) {
	st := NewState(map[string]any{"services": []string{"x"}})

	st.RemoveString("services", 5)
	st.UpdateString("services", -1, "y")
	st.RemoveEntry("faqs", 0)

	if got := st.Strings("services"); !reflect.DeepEqual(got, []string{"x"}) {
		t.Errorf("list = %v, want [x]", got)
	}
}

func TestState_NumberCoercion(t *testing.T) {
	st := NewState(map[string]any{"a": float64(2.5), "b": 3, "c": "nope"})

	if st.Number("a") != 2.5 {
		t.Errorf("a = %v", st.Number("a"))
	}
	if st.Number("b") != 3 {
		t.Errorf("b = %v", st.Number("b"))
	}
	if st.Number("c") != 0 {
		t.Errorf("c = %v, want 0", st.Number("c"))
	}
	if st.Number("missing") != 0 {
		t.Errorf("missing = %v, want 0", st.Number("missing"))
	}
}
