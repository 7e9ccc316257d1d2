// ABOUTME: Starter catalog of ten coffees used by Seed.
// ABOUTME: Seeding is idempotent by name; existing coffees only get embeddings refreshed.
package catalog

import "github.com/2389-research/brewmatch/internal/models"

type seedCoffee struct {
	name                                 string
	roast                                models.RoastLevel
	acidity, body, sweetness, bitterness int
	description                          string
}

var seedCoffees = []seedCoffee{
	{"Cerrado Mineiro Classic", models.RoastMedium, 3, 8, 7, 4,
		"A traditional Brazilian coffee from the Cerrado region with rich chocolate notes, low acidity, and a full, syrupy body. Perfect for espresso lovers and those who enjoy classic Brazilian flavors."},
	{"Sul de Minas Balanced", models.RoastMedium, 5, 6, 6, 4,
		"A beautifully balanced coffee from southern Minas Gerais featuring yellow fruit notes like peach and apricot, medium acidity, and a creamy body. Versatile for any brewing method."},
	{"Mantiqueira Fruity", models.RoastLight, 8, 5, 6, 3,
		"A vibrant specialty coffee from the Mantiqueira mountains with bright red berry and citrus notes. Light roast to preserve the delicate, complex flavors. Best for pour-over brewing."},
	{"Caparaó Fermented", models.RoastLight, 7, 7, 8, 2,
		"An experimental natural process coffee from Caparaó with unique wine-like notes and complex fermented flavors. For the adventurous palate seeking something truly distinctive."},
	{"Ethiopian Yirgacheffe", models.RoastLight, 9, 4, 7, 2,
		"A stunning light roast Ethiopian coffee bursting with floral jasmine notes and bright citrus acidity. Tea-like body with a clean, elegant finish. A pour-over lover's dream."},
	{"Italian Espresso Blend", models.RoastDark, 2, 9, 5, 7,
		"A classic dark roast blend designed for espresso extraction. Rich chocolate and caramel notes with a heavy, syrupy body and pleasant bitterness. The ultimate traditional espresso experience."},
	{"Colombian Supremo", models.RoastMedium, 4, 6, 7, 3,
		"A medium roast Colombian coffee with balanced nutty and caramel notes. Smooth body with mild acidity and a clean finish. A crowd-pleaser for any occasion."},
	{"Guatemala Antigua", models.RoastMedium, 4, 8, 5, 5,
		"A medium-dark roast from Guatemala's Antigua region. Rich, smoky chocolate notes with hints of spice and a full body. Excellent for french press brewing."},
	{"Kenya AA", models.RoastLight, 9, 5, 5, 4,
		"A bold light-medium roast Kenyan coffee known for its intense berry and blackcurrant notes. High acidity with a wine-like complexity. For those who love bright, complex coffees."},
	{"Sumatra Mandheling", models.RoastDark, 2, 9, 4, 6,
		"A full-bodied dark roast Indonesian coffee with earthy, herbal notes and hints of dark chocolate. Low acidity with a syrupy mouthfeel. Great for those who like bold, distinctive flavors."},
}

func (s seedCoffee) coffee() *models.Coffee {
	c := models.NewCoffee(s.name)
	c.Description = s.description
	c.RoastLevel = s.roast
	c.Acidity = models.Int(s.acidity)
	c.Body = models.Int(s.body)
	c.Sweetness = models.Int(s.sweetness)
	c.Bitterness = models.Int(s.bitterness)
	return c
}

// SeedNames lists the starter catalog's coffee names.
func SeedNames() []string {
	names := make([]string, len(seedCoffees))
	for i, s := range seedCoffees {
		names[i] = s.name
	}
	return names
}
