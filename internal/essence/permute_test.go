package essence

import "testing"

func TestPermute_Table(t *testing.T) {
	base := Vector{Fire: 1, Water: 2, Earth: 3, Air: 4}

	tests := []struct {
		perm Permutation
		want Vector
	}{
		{SwapFireWater, Vector{Fire: 2, Water: 1, Earth: 3, Air: 4}},
		{SwapEarthAir, Vector{Fire: 1, Water: 2, Earth: 4, Air: 3}},
		{SwapFireEarth, Vector{Fire: 3, Water: 2, Earth: 1, Air: 4}},
		{SwapWaterAir, Vector{Fire: 1, Water: 4, Earth: 3, Air: 2}},
		{RotateLeft, Vector{Fire: 2, Water: 3, Earth: 4, Air: 1}},
		{RotateRight, Vector{Fire: 4, Water: 1, Earth: 2, Air: 3}},
		{Reverse, Vector{Fire: 4, Water: 3, Earth: 2, Air: 1}},
	}

	for _, tt := range tests {
		t.Run(string(tt.perm), func(t *testing.T) {
			got, err := Permute(base, tt.perm)
			if err != nil {
				t.Fatalf("Permute(%s) failed: %v", tt.perm, err)
			}
			if got != tt.want {
				t.Errorf("Permute(%v, %s) = %v, want %v", base, tt.perm, got, tt.want)
			}
		})
	}
}

// Алгебраические законы обязаны выполняться на произвольных векторах,
// независимо от того, какое заклинание занимает какой вектор.
func TestPermute_Algebra(t *testing.T) {
	vectors := []Vector{
		{},
		{Fire: 1, Water: 2, Earth: 3, Air: 4},
		{Fire: 63, Water: 0, Earth: 63, Air: 0},
		{Fire: 25, Water: 3, Earth: 5, Air: 5},
		{Fire: 7, Water: 7, Earth: 7, Air: 7},
	}

	involutions := []Permutation{SwapFireWater, SwapEarthAir, SwapFireEarth, SwapWaterAir, Reverse}

	for _, v := range vectors {
		for _, p := range involutions {
			once, err := Permute(v, p)
			if err != nil {
				t.Fatalf("Permute(%s) failed: %v", p, err)
			}
			twice, err := Permute(once, p)
			if err != nil {
				t.Fatalf("Permute(%s) failed: %v", p, err)
			}
			if twice != v {
				t.Errorf("%s applied twice to %v = %v, want identity", p, v, twice)
			}
		}

		left, _ := Permute(v, RotateLeft)
		back, _ := Permute(left, RotateRight)
		if back != v {
			t.Errorf("rotate_left then rotate_right on %v = %v, want identity", v, back)
		}

		right, _ := Permute(v, RotateRight)
		back, _ = Permute(right, RotateLeft)
		if back != v {
			t.Errorf("rotate_right then rotate_left on %v = %v, want identity", v, back)
		}
	}
}

func TestPermute_PreservesComponents(t *testing.T) {
	// Перестановка биективна: мультимножество компонент не меняется.
	v := Vector{Fire: 11, Water: 22, Earth: 33, Air: 44}
	for _, p := range Permutations() {
		got, err := Permute(v, p)
		if err != nil {
			t.Fatalf("Permute(%s) failed: %v", p, err)
		}
		if got.Total() != v.Total() {
			t.Errorf("%s changed component sum: %v -> %v", p, v, got)
		}
	}
}

func TestPermute_UnknownName(t *testing.T) {
	if _, err := Permute(Vector{}, "swap_all"); err == nil {
		t.Error("Permute with unknown name succeeded, want error")
	}
}

func TestPermutations_Sorted(t *testing.T) {
	names := Permutations()
	if len(names) != 7 {
		t.Fatalf("Permutations() returned %d names, want 7", len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("Permutations() not sorted: %s >= %s", names[i-1], names[i])
		}
	}
}
