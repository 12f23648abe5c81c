package essence

import (
	"encoding/json"
	"math"
	"testing"
)

func TestFormula_Eval(t *testing.T) {
	// Контекст вычисления — вектор заклинания "ember" из базового контента.
	ctx := Vector{Fire: 25, Water: 3, Earth: 5, Air: 5}

	tests := []struct {
		src  string
		want float64
	}{
		{"fire * 0.6", 15},
		{"fire + water + earth + air", 38},
		{"fire - water", 22},
		{"(fire + air) * 2", 60},
		{"fire / 5", 5},
		{"42", 42},
		{"-fire", -25},
		{"fire * -1", -25},
		{"2 + 3 * 4", 14},   // приоритет умножения
		{"(2 + 3) * 4", 20}, // скобки важнее
		{"earth / water", 5.0 / 3.0},
		{"FIRE * 2", 50}, // имена нечувствительны к регистру
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			f, err := Parse(tt.src)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.src, err)
			}
			if got := f.Eval(ctx); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Eval(%q) = %v, want %v", tt.src, got, tt.want)
			}
		})
	}
}

func TestFormula_DivisionByZeroComponent(t *testing.T) {
	// Деление на нулевую стихию гасит частное, а не роняет каст.
	ctx := Vector{Fire: 40, Water: 0, Earth: 10, Air: 0}

	tests := []struct {
		src  string
		want float64
	}{
		{"fire / water", 0},
		{"fire / water + earth", 10},
		{"earth / (water * air)", 0},
		{"10 / 0", 0},
	}

	for _, tt := range tests {
		f, err := Parse(tt.src)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", tt.src, err)
		}
		if got := f.Eval(ctx); got != tt.want {
			t.Errorf("Eval(%q) = %v, want %v", tt.src, got, tt.want)
		}
	}
}

func TestFormula_EvalDoesNotMutate(t *testing.T) {
	ctx := Vector{Fire: 7, Water: 8, Earth: 9, Air: 10}
	f := MustParse("fire * water - earth / air")

	_ = f.Eval(ctx)

	if ctx != (Vector{Fire: 7, Water: 8, Earth: 9, Air: 10}) {
		t.Errorf("Eval mutated its context: %v", ctx)
	}
}

func TestParse_Errors(t *testing.T) {
	bad := []string{
		"",
		"fire +",
		"* 2",
		"(fire",
		"fire)",
		"mana * 2",
		"fire ** 2",
		"1.2.3",
		"fire % 2",
	}

	for _, src := range bad {
		if _, err := Parse(src); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", src)
		}
	}
}

func TestFormula_JSONRoundtrip(t *testing.T) {
	var f Formula
	if err := json.Unmarshal([]byte(`"fire * 0.6 + air / 2"`), &f); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	ctx := Vector{Fire: 10, Water: 0, Earth: 0, Air: 4}
	if got := f.Eval(ctx); got != 8 {
		t.Errorf("Eval after Unmarshal = %v, want 8", got)
	}

	out, err := json.Marshal(&f)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(out) != `"fire * 0.6 + air / 2"` {
		t.Errorf("Marshal = %s, want original source", out)
	}
}

func TestFormula_UnmarshalBadFormula(t *testing.T) {
	var f Formula
	if err := json.Unmarshal([]byte(`"mana + 1"`), &f); err == nil {
		t.Error("Unmarshal of unknown identifier succeeded, want error")
	}
	if err := json.Unmarshal([]byte(`17`), &f); err == nil {
		t.Error("Unmarshal of non-string succeeded, want error")
	}
}

func TestFormula_NilEval(t *testing.T) {
	// Отсутствующая формула — ноль, а не паника: половина эффектов
	// в контенте не задаёт опциональные величины.
	var f *Formula
	if got := f.Eval(Vector{Fire: 63}); got != 0 {
		t.Errorf("nil Formula Eval = %v, want 0", got)
	}
}
