package catalog

import (
	"sort"

	"github.com/radieske/tennis-edge-api/internal/tennis/models"
)

const (
	hard  = models.SurfaceHard
	clay  = models.SurfaceClay
	grass = models.SurfaceGrass
)

// Catálogo fixo de jogadores, na ordem de cadastro
var defaultPlayers = []models.Player{
	// ATP top
	{Name: "Carlos Alcaraz", Rank: 1, Country: "ESP", Age: 21, SurfacePreference: hard},
	{Name: "Jannik Sinner", Rank: 2, Country: "ITA", Age: 23, SurfacePreference: hard},
	{Name: "Alexander Zverev", Rank: 3, Country: "GER", Age: 27, SurfacePreference: hard},
	{Name: "Daniil Medvedev", Rank: 4, Country: "RUS", Age: 28, SurfacePreference: hard},
	{Name: "Taylor Fritz", Rank: 5, Country: "USA", Age: 27, SurfacePreference: hard},
	{Name: "Alex De Minaur", Rank: 6, Country: "AUS", Age: 25, SurfacePreference: hard},
	{Name: "Ben Shelton", Rank: 16, Country: "USA", Age: 22, SurfacePreference: hard},

	// Challenger
	{Name: "Alex Molcan", Rank: 89, Country: "SVK", Age: 27, SurfacePreference: clay},
	{Name: "Otto Virtanen", Rank: 112, Country: "FIN", Age: 23, SurfacePreference: hard},
	{Name: "Norbert Gombos", Rank: 156, Country: "SVK", Age: 34, SurfacePreference: clay},
	{Name: "Luca Potenza", Rank: 234, Country: "ITA", Age: 25, SurfacePreference: clay},
	{Name: "Calvin Hemery", Rank: 187, Country: "FRA", Age: 26, SurfacePreference: clay},
	{Name: "Hugo Grenier", Rank: 198, Country: "FRA", Age: 24, SurfacePreference: clay},
	{Name: "Alastair Gray", Rank: 267, Country: "GBR", Age: 25, SurfacePreference: hard},
	{Name: "Stefanos Sakellaridis", Rank: 289, Country: "GRE", Age: 26, SurfacePreference: hard},
	{Name: "Milos Karol", Rank: 245, Country: "SVK", Age: 24, SurfacePreference: hard},
	{Name: "Nicolas Mejia", Rank: 178, Country: "COL", Age: 23, SurfacePreference: clay},
	{Name: "Abedallah Shelbayh", Rank: 312, Country: "JOR", Age: 27, SurfacePreference: hard},
	{Name: "Mert Naci Turker", Rank: 456, Country: "TUR", Age: 22, SurfacePreference: hard},
	{Name: "Luciano Darderi", Rank: 67, Country: "ITA", Age: 22, SurfacePreference: clay},
	{Name: "Pablo Carreno Busta", Rank: 145, Country: "ESP", Age: 33, SurfacePreference: clay},
	{Name: "Daniel Evans", Rank: 134, Country: "GBR", Age: 34, SurfacePreference: grass},
	{Name: "Marco Trungelliti", Rank: 189, Country: "ARG", Age: 34, SurfacePreference: clay},
	{Name: "Mark Lajal", Rank: 223, Country: "EST", Age: 21, SurfacePreference: hard},

	// WTA
	{Name: "Iga Swiatek", Rank: 1, Country: "POL", Age: 23, SurfacePreference: clay},
	{Name: "Aryna Sabalenka", Rank: 2, Country: "BLR", Age: 26, SurfacePreference: hard},
	{Name: "Coco Gauff", Rank: 3, Country: "USA", Age: 20, SurfacePreference: hard},
	{Name: "Jessica Pegula", Rank: 4, Country: "USA", Age: 30, SurfacePreference: hard},
	{Name: "Elena Rybakina", Rank: 5, Country: "KAZ", Age: 25, SurfacePreference: grass},
	{Name: "Anca Alexia Todoni", Rank: 142, Country: "ROU", Age: 19, SurfacePreference: clay},
}

// WomenNames é o conjunto fixo usado nos sorteios de torneios WTA
var WomenNames = []string{
	"Iga Swiatek",
	"Aryna Sabalenka",
	"Coco Gauff",
	"Jessica Pegula",
	"Elena Rybakina",
	"Anca Alexia Todoni",
}

// Catalog é imutável depois de criado; seguro para leitura concorrente
type Catalog struct {
	players []models.Player
	byName  map[string]models.Player
}

// Default retorna o catálogo embutido
func Default() *Catalog { return New(defaultPlayers) }

// New copia a lista recebida; nomes repetidos ficam com a última entrada no índice
func New(players []models.Player) *Catalog {
	c := &Catalog{
		players: append([]models.Player(nil), players...),
		byName:  make(map[string]models.Player, len(players)),
	}
	for _, p := range c.players {
		c.byName[p.Name] = p
	}
	return c
}

func (c *Catalog) Len() int { return len(c.players) }

// All retorna uma cópia na ordem de cadastro
func (c *Catalog) All() []models.Player {
	return append([]models.Player(nil), c.players...)
}

func (c *Catalog) Lookup(name string) (models.Player, bool) {
	p, ok := c.byName[name]
	return p, ok
}

// Filter retorna os jogadores que satisfazem keep, na ordem de cadastro
func (c *Catalog) Filter(keep func(models.Player) bool) []models.Player {
	var out []models.Player
	for _, p := range c.players {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

// Named retorna os jogadores cujos nomes estão em names, na ordem de cadastro
func (c *Catalog) Named(names []string) []models.Player {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return c.Filter(func(p models.Player) bool {
		_, ok := set[p.Name]
		return ok
	})
}

// SortedByRank ordena por ranking crescente; empates mantêm a ordem de cadastro
func (c *Catalog) SortedByRank() []models.Player {
	out := c.All()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Rank < out[j].Rank })
	return out
}
