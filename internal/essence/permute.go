package essence

import (
	"fmt"
	"sort"
)

// Permutation — именованная перестановка компонент вектора.
// Перестановки биективны на пространстве [0..63]^4, зажим им не нужен:
// компоненты только меняются местами.
type Permutation string

const (
	SwapFireWater Permutation = "swap_fw"
	SwapEarthAir  Permutation = "swap_ea"
	SwapFireEarth Permutation = "swap_fe"
	SwapWaterAir  Permutation = "swap_wa"
	RotateLeft    Permutation = "rotate_left"
	RotateRight   Permutation = "rotate_right"
	Reverse       Permutation = "reverse"
)

// Таблица перестановок: (f, w, e, a) -> результат.
// Парные обмены и reverse — инволюции; rotate_left и rotate_right
// взаимно обратны. Алгебра проверяется тестами независимо от того,
// какие заклинания занимают конкретные векторы.
var permutations = map[Permutation]func(Vector) Vector{
	SwapFireWater: func(v Vector) Vector {
		return Vector{Fire: v.Water, Water: v.Fire, Earth: v.Earth, Air: v.Air}
	},
	SwapEarthAir: func(v Vector) Vector {
		return Vector{Fire: v.Fire, Water: v.Water, Earth: v.Air, Air: v.Earth}
	},
	SwapFireEarth: func(v Vector) Vector {
		return Vector{Fire: v.Earth, Water: v.Water, Earth: v.Fire, Air: v.Air}
	},
	SwapWaterAir: func(v Vector) Vector {
		return Vector{Fire: v.Fire, Water: v.Air, Earth: v.Earth, Air: v.Water}
	},
	RotateLeft: func(v Vector) Vector {
		return Vector{Fire: v.Water, Water: v.Earth, Earth: v.Air, Air: v.Fire}
	},
	RotateRight: func(v Vector) Vector {
		return Vector{Fire: v.Air, Water: v.Fire, Earth: v.Water, Air: v.Earth}
	},
	Reverse: func(v Vector) Vector {
		return Vector{Fire: v.Air, Water: v.Earth, Earth: v.Water, Air: v.Fire}
	},
}

// Permute применяет именованную перестановку к вектору.
// Неизвестное имя — ошибка ввода, а не паника: имена приходят от игрока.
func Permute(v Vector, p Permutation) (Vector, error) {
	fn, ok := permutations[p]
	if !ok {
		return Vector{}, fmt.Errorf("unknown permutation %q", p)
	}
	return fn(v), nil
}

// Permutations возвращает отсортированный список допустимых имён —
// для сообщений об ошибках и выдачи клиенту.
func Permutations() []Permutation {
	names := make([]Permutation, 0, len(permutations))
	for name := range permutations {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}
