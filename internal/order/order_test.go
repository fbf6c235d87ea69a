package order

import (
	"path"
	"reflect"
	"testing"

	"github.com/starford/laguz/internal/models"
	"github.com/starford/laguz/internal/storage"
)

func tempStore(t *testing.T) storage.Provider {
	t.Helper()
	st, err := storage.NewFS(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return st
}

func TestReadMissingReturnsNil(t *testing.T) {
	st := tempStore(t)
	if got := Read(st, "checklists/alice"); got != nil {
		t.Errorf("Read on missing sidecar = %+v, want nil", got)
	}
}

func TestReadCorruptReturnsNil(t *testing.T) {
	st := tempStore(t)
	if err := st.Write(path.Join("checklists/alice", FileName), []byte("{not json")); err != nil {
		t.Fatal(err)
	}
	if got := Read(st, "checklists/alice"); got != nil {
		t.Errorf("Read on corrupt sidecar = %+v, want nil", got)
	}
}

func TestWriteAndRead(t *testing.T) {
	st := tempStore(t)
	dir := "checklists/alice/Home"
	err := Write(st, dir, models.OrderData{
		Categories: []string{"Kitchen", "Garage"},
		Items:      []string{"b", "a"},
	})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	got := Read(st, dir)
	if got == nil {
		t.Fatal("Read returned nil after Write")
	}
	if !reflect.DeepEqual(got.Categories, []string{"Kitchen", "Garage"}) {
		t.Errorf("categories = %v", got.Categories)
	}
	if !reflect.DeepEqual(got.Items, []string{"b", "a"}) {
		t.Errorf("items = %v", got.Items)
	}
}

func TestWritePartialMergePreservesOtherField(t *testing.T) {
	st := tempStore(t)
	dir := "notes/alice"
	if err := Write(st, dir, models.OrderData{Categories: []string{"work"}}); err != nil {
		t.Fatal(err)
	}
	// Writing only items must not clobber the existing category order.
	if err := Write(st, dir, models.OrderData{Items: []string{"x", "y"}}); err != nil {
		t.Fatal(err)
	}

	got := Read(st, dir)
	if !reflect.DeepEqual(got.Categories, []string{"work"}) {
		t.Errorf("categories = %v, want [work]", got.Categories)
	}
	if !reflect.DeepEqual(got.Items, []string{"x", "y"}) {
		t.Errorf("items = %v", got.Items)
	}
}

func TestWriteEmptySliceClearsField(t *testing.T) {
	st := tempStore(t)
	dir := "notes/alice"
	if err := Write(st, dir, models.OrderData{Items: []string{"x"}}); err != nil {
		t.Fatal(err)
	}
	if err := Write(st, dir, models.OrderData{Items: []string{}}); err != nil {
		t.Fatal(err)
	}
	got := Read(st, dir)
	if got == nil {
		t.Fatal("sidecar missing")
	}
	if got.Items != nil {
		t.Errorf("items = %v, want cleared", got.Items)
	}
}

func TestResolve(t *testing.T) {
	cases := []struct {
		name     string
		explicit []string
		existing []string
		want     []string
	}{
		{"no explicit order", nil, []string{"b", "A", "c"}, []string{"A", "b", "c"}},
		{"explicit first, rest alphabetical", []string{"b", "a"}, []string{"a", "b", "c"}, []string{"b", "a", "c"}},
		{"stale entries dropped", []string{"gone", "b"}, []string{"a", "b"}, []string{"b", "a"}},
		{"duplicates ignored", []string{"a", "a", "b"}, []string{"a", "b"}, []string{"a", "b"}},
		{"empty existing", []string{"a"}, nil, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Resolve(tc.explicit, tc.existing)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Resolve(%v, %v) = %v, want %v", tc.explicit, tc.existing, got, tc.want)
			}
		})
	}
}
