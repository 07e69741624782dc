package voxel

import "testing"

func TestEmptyVoxelIsEmpty(t *testing.T) {
	v := EmptyVoxel(1.5)
	if !v.IsEmpty() {
		t.Fatal("empty voxel reports non-empty")
	}
	if v.Type() != NoVoxelType {
		t.Fatalf("empty voxel has type %v, want NoVoxelType", v.Type())
	}
}

func TestNonEmptyVoxelIsNotEmpty(t *testing.T) {
	v := NonEmptyVoxel(3, -0.25)
	if v.IsEmpty() {
		t.Fatal("non-empty voxel reports empty")
	}
	if v.Type() != 3 {
		t.Fatalf("got type %v, want 3", v.Type())
	}
	if v.SignedDistanceValue() != -0.25 {
		t.Fatalf("got distance %v, want -0.25", v.SignedDistanceValue())
	}
}

func TestEmptyVoxelRejectsNegativeDistance(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for negative distance on an empty voxel")
		}
	}()
	EmptyVoxel(-0.1)
}

func TestNonEmptyVoxelRejectsNonNegativeDistance(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for non-negative distance on a non-empty voxel")
		}
	}()
	NonEmptyVoxel(1, 0)
}

func TestNonEmptyVoxelRejectsNoVoxelType(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for NoVoxelType on a non-empty voxel")
		}
	}()
	NonEmptyVoxel(NoVoxelType, -1)
}

func TestPlaceholderSignedDistanceValue(t *testing.T) {
	if got := EmptyVoxel(10).PlaceholderSignedDistanceValue(); got != 0.5 {
		t.Fatalf("empty placeholder = %v, want 0.5", got)
	}
	if got := NonEmptyVoxel(1, -10).PlaceholderSignedDistanceValue(); got != -0.5 {
		t.Fatalf("non-empty placeholder = %v, want -0.5", got)
	}
}

func TestVoxelTypeRegistry(t *testing.T) {
	r := NewVoxelTypeRegistry()
	if r.Name(NoVoxelType) != "empty" {
		t.Fatalf("NoVoxelType name = %q, want %q", r.Name(NoVoxelType), "empty")
	}

	r.Register(1, "stone")
	if r.Name(1) != "stone" {
		t.Fatalf("Name(1) = %q, want %q", r.Name(1), "stone")
	}
	if r.Name(2) != "" {
		t.Fatalf("Name(2) = %q, want empty string for unregistered type", r.Name(2))
	}

	r.Clear()
	if r.Name(1) != "" {
		t.Fatal("Clear did not remove a registered name")
	}
	if r.Name(NoVoxelType) != "empty" {
		t.Fatal("Clear removed the reserved NoVoxelType name")
	}
}

func TestVoxelTypeRegistryRegisterPanicsOnNoVoxelType(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic registering a name for NoVoxelType")
		}
	}()
	NewVoxelTypeRegistry().Register(NoVoxelType, "x")
}

func TestMaxVoxelTypeCount(t *testing.T) {
	if got := MaxVoxelTypeCount(); got != MaxVoxelTypes-1 {
		t.Fatalf("MaxVoxelTypeCount() = %d, want %d", got, MaxVoxelTypes-1)
	}
}
