package migrate

import (
	"strings"

	"github.com/vendaflow/backoffice/pkg/db/models"
)

// CategoryRule maps product-name keywords to a category.
type CategoryRule struct {
	Category string
	Keywords []string
}

// CategoryRules are evaluated in order; the first rule with a matching keyword wins.
var CategoryRules = []CategoryRule{
	{
		Category: "Eletrônicos",
		Keywords: []string{
			"celular", "smartphone", "notebook", "tablet", "fone", "carregador", "cabo usb",
			"televisão", "televisao", "smart tv", "mouse", "teclado", "monitor", "caixa de som",
			"eletrônico", "eletronico", "pilha", "bateria",
		},
	},
	{
		Category: "Alimentação",
		Keywords: []string{
			"arroz", "feijão", "feijao", "açúcar", "acucar", "café", "cafe", "macarrão", "macarrao",
			"óleo", "oleo", "farinha", "biscoito", "bolacha", "leite", "queijo", "pão", "pao",
			"chocolate", "sal ", "molho", "enlatado",
		},
	},
	{
		Category: "Limpeza",
		Keywords: []string{
			"sabão", "sabao", "detergente", "desinfetante", "amaciante", "água sanitária",
			"agua sanitaria", "alvejante", "esponja", "vassoura", "limpador", "multiuso", "limpeza",
		},
	},
	{
		Category: "Bebidas",
		Keywords: []string{
			"refrigerante", "suco", "água mineral", "agua mineral", "cerveja", "vinho",
			"energético", "energetico", "bebida", "chá", "cha gelado", "isotônico", "isotonico",
		},
	},
}

// CategoryNames lists every seeded category, the generic default first.
func CategoryNames() []string {
	names := []string{models.DefaultCategory}
	for _, rule := range CategoryRules {
		names = append(names, rule.Category)
	}
	return names
}

// CategoryFor returns the category of the first rule whose keyword appears in name,
// compared case-insensitively. ok is false when no rule matches.
func CategoryFor(name string) (category string, ok bool) {
	normalized := " " + strings.ToLower(strings.TrimSpace(name)) + " "
	for _, rule := range CategoryRules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(normalized, keyword) {
				return rule.Category, true
			}
		}
	}
	return "", false
}
