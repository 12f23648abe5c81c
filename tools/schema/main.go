// Command schema — генератор JSON-схемы словаря заклинаний.
// Схему подключают к редактору, и авторы контента видят опечатки в
// data/spells.json до того, как их увидит загрузчик при старте сервера.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/iancoleman/orderedmap"
	"github.com/invopop/jsonschema"

	"github.com/tripstych/elemental/internal/essence"
)

func main() {
	var outPath string
	flag.StringVar(&outPath, "out", "data/spells.schema.json", "куда писать схему")
	flag.Parse()

	if err := writeSchema(outPath, buildSchema()); err != nil {
		fmt.Fprintf(os.Stderr, "schema: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Spell schema written to", outPath)
}

// buildSchema собирает корневую схему: массив записей заклинаний плюс
// переиспользуемые определения величины и узла эффекта. Дерево эффектов
// рекурсивно (area_effect вкладывает другие эффекты), поэтому узел живёт
// в $defs и подключается по $ref.
func buildSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Version: jsonschema.Version,
		Title:   "Elemental spell table",
		Description: "Словарь заклинаний: слова силы с составом эссенции и деревом эффектов. " +
			"Порядок записей значим — при совпадении составов реестр оставляет первое слово.",
		Type:     "array",
		MinItems: 1,
		Items:    entrySchema(),
		Definitions: jsonschema.Definitions{
			"formula": formulaSchema(),
			"effect":  effectSchema(),
		},
	}
}

func entrySchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "object",
		Title:       "Spell entry",
		Description: "Одно слово силы.",
		Properties: properties(
			property{"word", &jsonschema.Schema{
				Type:        "string",
				MinLength:   1,
				Description: "Слово, которое произносит игрок. Ключ реестра, регистр значим.",
			}},
			property{"synset", &jsonschema.Schema{
				Type:        "string",
				Description: "Синсет WordNet, из которого взято значение, например fireball.n.01.",
			}},
			property{"spirit", &jsonschema.Schema{
				Type:        "string",
				Enum:        elementEnum(),
				Description: "Доминирующая стихия слова.",
			}},
			property{"definition", &jsonschema.Schema{
				Type:        "string",
				Description: "Толкование слова; игрок видит его в гримуаре.",
			}},
			property{"composition", compositionSchema()},
			property{"effects", &jsonschema.Schema{
				Type:        "array",
				MinItems:    1,
				Items:       ref("effect", ""),
				Description: "Эффекты применяются в порядке записи.",
			}},
		),
		Required:             []string{"word", "synset", "spirit", "definition", "composition", "effects"},
		AdditionalProperties: jsonschema.FalseSchema,
	}
}

// compositionSchema — элементная подпись слова: одновременно стоимость
// каста и контекст вычисления формул. Загрузчик дополнительно требует,
// чтобы хотя бы одна компонента была ненулевой.
func compositionSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "object",
		Description: "Состав эссенции, каждая компонента в пределах [0..63]; полностью нулевой состав недопустим.",
		Properties: properties(
			property{"fire", component()},
			property{"water", component()},
			property{"earth", component()},
			property{"air", component()},
		),
		Required:             []string{"fire", "water", "earth", "air"},
		AdditionalProperties: jsonschema.FalseSchema,
	}
}

// component — одна компонента состава. Нулевой Minimum теряется на
// omitempty, поэтому нижняя граница выражена через Extras.
func component() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:    "integer",
		Maximum: essence.MaxComponent,
		Extras:  map[string]interface{}{"minimum": 0},
	}
}

// formulaSchema — величина эффекта. Контент исторически смешивает числа
// и строки формул, загрузчик принимает оба вида.
func formulaSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Title: "Effect magnitude",
		Description: "Число или формула от состава заклинания, например \"fire * 0.8\". " +
			"Операнды — fire, water, earth, air и числовые литералы; операторы + - * /, унарный минус и скобки.",
		OneOf: []*jsonschema.Schema{
			{Type: "number"},
			{Type: "string", MinLength: 1},
		},
	}
}

// effectSchema перечисляет виды узлов дерева эффектов. Набор закрытый
// и повторяет ветки DecodeEffect; новый вид эффекта добавляется и там,
// и здесь.
func effectSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Title:       "Spell effect",
		Description: "Узел дерева эффектов; вид узла задаёт поле type.",
		OneOf: []*jsonschema.Schema{
			damageVariant(),
			healVariant(),
			applyStatusVariant(),
			areaVariant(),
			createObjectVariant(),
			summonVariant(),
			buffVariant(),
			transformVariant(),
		},
	}
}

func damageVariant() *jsonschema.Schema {
	return variant("damage", "Прямой урон цели; снижается её защитой.",
		[]string{"amount", "element"},
		property{"amount", ref("formula", "Величина урона.")},
		property{"element", &jsonschema.Schema{
			Type:        "string",
			Enum:        elementEnum(),
			Description: "Стихия урона, попадает в нарратив.",
		}},
	)
}

func healVariant() *jsonschema.Schema {
	return variant("heal", "Восстанавливает здоровье и опционально снимает статусы.",
		[]string{"amount"},
		property{"amount", ref("formula", "Сколько здоровья вернуть.")},
		property{"cleanse", &jsonschema.Schema{
			Type:        "array",
			Items:       &jsonschema.Schema{Type: "string"},
			Description: "Имена статусов, которые лечение снимает.",
		}},
	)
}

func applyStatusVariant() *jsonschema.Schema {
	return variant("apply_status", "Вешает именованный статус; повторное наложение обновляет срок, не стакает.",
		[]string{"status", "duration"},
		property{"status", &jsonschema.Schema{
			Type:        "string",
			MinLength:   1,
			Description: "Имя статуса.",
		}},
		property{"duration", ref("formula", "Длительность в ходах.")},
		property{"attack_delta", &jsonschema.Schema{
			Type:        "integer",
			Description: "Сдвиг атаки носителя; отрицательный ослабляет.",
		}},
		property{"defense_delta", &jsonschema.Schema{
			Type:        "integer",
			Description: "Сдвиг защиты носителя.",
		}},
		property{"damage_per_turn", &jsonschema.Schema{
			Type:        "integer",
			Description: "Урон в начале каждого хода носителя.",
		}},
		property{"to_self", &jsonschema.Schema{
			Type:        "boolean",
			Description: "Наложить на кастера, а не на цель.",
		}},
	)
}

func areaVariant() *jsonschema.Schema {
	return variant("area_effect", "Применяет вложенные эффекты ко всем существам в радиусе от опорной точки.",
		[]string{"radius", "effects"},
		property{"radius", ref("formula", "Радиус в клетках по Чебышёву.")},
		property{"center_self", &jsonschema.Schema{
			Type:        "boolean",
			Description: "Центр области — кастер, а не цель.",
		}},
		property{"effects", &jsonschema.Schema{
			Type:        "array",
			MinItems:    1,
			Items:       ref("effect", ""),
			Description: "Вложенные эффекты; применяются к каждому существу в зоне.",
		}},
	)
}

func createObjectVariant() *jsonschema.Schema {
	return variant("create_object", "Материализует предмет на клетке цели или кастера.",
		[]string{"object", "hp"},
		property{"object", &jsonschema.Schema{
			Type:        "string",
			MinLength:   1,
			Description: "Ключ из таблицы объектов.",
		}},
		property{"hp", ref("formula", "Прочность созданного объекта.")},
	)
}

func summonVariant() *jsonschema.Schema {
	return variant("summon", "Призывает временного союзника рядом с кастером.",
		[]string{"creature", "hp", "duration"},
		property{"creature", &jsonschema.Schema{
			Type:        "string",
			MinLength:   1,
			Description: "Ключ существа из бестиария.",
		}},
		property{"hp", ref("formula", "Здоровье призванного существа.")},
		property{"duration", ref("formula", "Срок призыва в ходах; после него существо растворяется.")},
	)
}

func buffVariant() *jsonschema.Schema {
	return variant("buff", "Временно сдвигает атаку или защиту цели; отрицательная величина ослабляет.",
		[]string{"status", "stat", "amount", "duration"},
		property{"status", &jsonschema.Schema{
			Type:        "string",
			MinLength:   1,
			Description: "Имя статуса, под которым живёт бафф.",
		}},
		property{"stat", &jsonschema.Schema{
			Type:        "string",
			Enum:        []interface{}{"attack", "defense"},
			Description: "Какая характеристика сдвигается.",
		}},
		property{"amount", ref("formula", "Величина сдвига.")},
		property{"duration", ref("formula", "Длительность в ходах.")},
	)
}

func transformVariant() *jsonschema.Schema {
	return variant("transform", "Необратимо превращает цель в инертный объект.",
		[]string{"into"},
		property{"into", &jsonschema.Schema{
			Type:        "string",
			MinLength:   1,
			Description: "Ключ объекта, в который обращается цель.",
		}},
	)
}

// variant собирает схему одного вида эффекта: константный дискриминатор
// type плюс собственные поля вида. Лишние поля запрещены, чтобы редактор
// подсвечивал опечатки в именах.
func variant(kind, desc string, required []string, fields ...property) *jsonschema.Schema {
	all := append([]property{{"type", &jsonschema.Schema{
		Type: "string",
		Enum: []interface{}{kind},
	}}}, fields...)
	return &jsonschema.Schema{
		Type:                 "object",
		Title:                kind,
		Description:          desc,
		Properties:           properties(all...),
		Required:             append([]string{"type"}, required...),
		AdditionalProperties: jsonschema.FalseSchema,
	}
}

// ref — ссылка на определение из $defs; описание поясняет место использования.
func ref(name, desc string) *jsonschema.Schema {
	return &jsonschema.Schema{Ref: "#/$defs/" + name, Description: desc}
}

func elementEnum() []interface{} {
	out := make([]interface{}, 0, 4)
	for _, e := range []essence.Element{essence.Fire, essence.Water, essence.Earth, essence.Air} {
		out = append(out, e.String())
	}
	return out
}

type property struct {
	name   string
	schema *jsonschema.Schema
}

// properties сохраняет порядок полей, чтобы схема читалась как сам контент.
func properties(pairs ...property) *orderedmap.OrderedMap {
	m := orderedmap.New()
	for _, p := range pairs {
		m.Set(p.name, p.schema)
	}
	return m
}

func writeSchema(outPath string, schema *jsonschema.Schema) error {
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create schema directory: %w", err)
	}

	// Пишем во временный файл и переименовываем, чтобы редактор не
	// увидел полусхему.
	tmpPath := outPath + ".tmp"
	if err := os.WriteFile(tmpPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write temp schema: %w", err)
	}
	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("replace schema: %w", err)
	}
	return nil
}
