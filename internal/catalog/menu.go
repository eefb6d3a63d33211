package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/iliyamo/blackmouth-booking/internal/model"
)

func item(name, desc, price, image string, popular bool) model.CatalogItem {
	return model.CatalogItem{
		Name:        name,
		Description: desc,
		Price:       decimal.RequireFromString(price),
		ImageRef:    image,
		Popular:     popular,
	}
}

const (
	descSalmon     = "Deliciosa pizza al horno de salmón ahumado, queso crema y un toque de eneldo."
	descSerrano    = "Deliciosa pizza al horno de jamón serrano, rúcula fresca y lascas de parmesano."
	descVegetarian = "Deliciosa pizza al horno con una selección de vegetales frescos de temporada."
	descHawaiian   = "La clásica combinación de jamón, piña y queso mozzarella."
	descShrimp     = "Pizza con camarones salteados al ajillo, pimientos y cebolla morada."
	descPepperoni  = "Abundante pepperoni de alta calidad sobre una capa de mozzarella fundido."
	descCheese     = "Una mezcla de cuatro quesos: mozzarella, provolone, parmesano y gorgonzola."
	descTuna       = "Pizza con atún, cebolla morada, aceitunas negras y pimiento morrón."
	descNutella    = "Pizza dulce con una generosa capa de Nutella, fresas y avellanas."
	descMexican    = "Pizza con base de frijoles, chorizo, jalapeños, aguacate y cilantro."
	descMargarita  = "La reina de Nápoles. Tomate San Marzano, mozzarella fior di latte y albahaca fresca."
)

// Default returns the compiled-in Blackmouth menu.
func Default() *Catalog {
	return MustNew([]model.CatalogItem{
		item("SALMÓN CLÁSICA", descSalmon, "220.00", "/images/pizza_1.jpeg", false),
		item("SALMÓN INDIVIDUAL", descSalmon, "120.00", "/images/pizza_1.jpeg", false),
		item("JAMÓN SERRANO CLÁSICA", descSerrano, "220.00", "/images/pizza_2.jpeg", true),
		item("JAMÓN SERRANO INDIVIDUAL", descSerrano, "120.00", "/images/pizza_2.jpeg", false),
		item("VEGETARIANA CLÁSICA", descVegetarian, "165.00", "/images/pizza_3.jpeg", false),
		item("VEGETARIANA INDIVIDUAL", descVegetarian, "85.00", "/images/pizza_3.jpeg", false),
		item("HAWAIANA CLÁSICA", descHawaiian, "170.00", "/images/pizza_4.jpeg", false),
		item("HAWAIANA INDIVIDUAL", descHawaiian, "90.00", "/images/pizza_4.jpeg", false),
		item("CAMARONES CLÁSICA", descShrimp, "220.00", "/images/pizza_5.jpeg", false),
		item("CAMARONES INDIVIDUAL", descShrimp, "100.00", "/images/pizza_5.jpeg", false),
		item("PEPPERONI CLÁSICA", descPepperoni, "149.00", "/images/pizza_6.jpeg", true),
		item("PEPPERONI INDIVIDUAL", descPepperoni, "79.00", "/images/pizza_6.jpeg", false),
		item("QUESO CLÁSICA", descCheese, "149.00", "/images/pizza_7.jpeg", false),
		item("QUESO INDIVIDUAL", descCheese, "79.00", "/images/pizza_7.jpeg", false),
		item("ATÚN CLÁSICA", descTuna, "170.00", "/images/pizza_8.jpeg", false),
		item("ATÚN INDIVIDUAL", descTuna, "90.00", "/images/pizza_8.jpeg", false),
		item("NUTELLA CLÁSICA", descNutella, "189.00", "/images/pizza_1.jpeg", true),
		item("NUTELLA INDIVIDUAL", descNutella, "95.00", "/images/pizza_1.jpeg", false),
		item("MEXICANA CLÁSICA", descMexican, "180.00", "/images/pizza_2.jpeg", false),
		item("MEXICANA INDIVIDUAL", descMexican, "95.00", "/images/pizza_2.jpeg", false),
		item("MARGARITA CLÁSICA", descMargarita, "170.00", "/images/pizza_3.jpeg", true),
		item("MARGARITA INDIVIDUAL", descMargarita, "90.00", "/images/pizza_3.jpeg", false),
	})
}
