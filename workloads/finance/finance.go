// Package finance is the finance-1 workload: a market dashboard with a
// sortable stock table, expandable rows with price history and a sector
// filter.
package finance

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/bgrins/speedometer-artifact-workloads/pkg/workload"
	"github.com/bgrins/speedometer-artifact-workloads/workloads/internal/random"
)

const (
	seed        = 42
	allSectors  = "All"
	expandCount = 20
	selectCount = 10
)

var sectorNames = []string{
	"Technology", "Healthcare", "Finance", "Energy", "Consumer", "Industrial",
	"Materials", "Real Estate", "Utilities", "Telecom", "Discretionary",
}

var sortColumns = []string{"symbol", "price", "change", "volume"}

type Stock struct {
	Symbol  string
	Name    string
	Sector  string
	Price   float64
	Change  float64
	Volume  int
	History []float64
}

type sortConfig struct {
	key  string
	desc bool
}

type Artifact struct {
	workload.BaseArtifact
	args struct {
		NumStocks   int `help:"Number of stocks in the table" default:"100"`
		NumSectors  int `help:"Number of sectors stocks are spread over" default:"11"`
		ChartPoints int `help:"Number of points in each price history" default:"90"`
	}

	stocks         []Stock
	sectors        []string
	selectedSector string
	selected       *Stock
	sort           sortConfig
	expanded       map[string]bool

	// Rendered view.
	rows    []row
	renders int
}

type row struct {
	stock *Stock
	low   float64
	high  float64
}

func (a *Artifact) Name() string {
	return "finance-1"
}

func (a *Artifact) Description() string {
	return "Market dashboard with a sortable stock table"
}

func (a *Artifact) Args() any {
	return &a.args
}

func (a *Artifact) Load(ctx workload.LoadContext) error {
	if a.args.NumStocks <= 0 || a.args.ChartPoints <= 0 {
		return fmt.Errorf("stocks and chart points must be positive")
	}
	if a.args.NumSectors <= 0 || a.args.NumSectors > len(sectorNames) {
		return fmt.Errorf("sectors must be between 1 and %d", len(sectorNames))
	}

	a.stocks = generateStocks(a.args.NumStocks, a.args.NumSectors, a.args.ChartPoints)
	a.sectors = uniqueSectors(a.stocks)
	a.selectedSector = allSectors
	a.selected = nil
	a.sort = sortConfig{key: "symbol"}
	a.expanded = make(map[string]bool)
	a.renders = 0
	a.render()

	ctx.Logger().Debugf("Generated %d stocks in %d sectors", len(a.stocks), len(a.sectors))
	return nil
}

func (a *Artifact) RegisterTestCases(r workload.TestRegistrar) error {
	r.RegisterTestCase("SortAllColumns", a.sortAllColumns)
	r.RegisterTestCase("ExpandCollapseManyRows", a.expandCollapseManyRows)
	r.RegisterTestCase("FilterAllSectors", a.filterAllSectors)
	r.RegisterTestCase("SelectStocksSequentially", a.selectStocksSequentially)
	return nil
}

func (a *Artifact) sortAllColumns() error {
	for _, column := range sortColumns {
		a.handleSort(column)
	}
	return nil
}

func (a *Artifact) expandCollapseManyRows() error {
	symbols := make([]string, 0, expandCount)
	for _, stock := range a.stocks[:min(expandCount, len(a.stocks))] {
		symbols = append(symbols, stock.Symbol)
	}

	for _, symbol := range symbols {
		a.toggleRow(symbol)
	}
	for _, symbol := range symbols {
		a.toggleRow(symbol)
	}
	return nil
}

func (a *Artifact) filterAllSectors() error {
	for _, sector := range a.sectors {
		a.selectSector(sector)
	}
	a.selectSector(allSectors)
	return nil
}

func (a *Artifact) selectStocksSequentially() error {
	for i := range a.stocks[:min(selectCount, len(a.stocks))] {
		a.selectStock(&a.stocks[i])
	}
	a.selectStock(nil)
	return nil
}

// handleSort sorts by key, flipping the direction when the table is already
// sorted ascending by the same key.
func (a *Artifact) handleSort(key string) {
	desc := a.sort.key == key && !a.sort.desc
	a.sort = sortConfig{key: key, desc: desc}

	// The selection points into the table, so remember it by symbol.
	selected := ""
	if a.selected != nil {
		selected = a.selected.Symbol
	}

	slices.SortStableFunc(a.stocks, func(x, y Stock) int {
		c := compareBy(key, &x, &y)
		if desc {
			return -c
		}
		return c
	})

	if selected != "" {
		a.selected = a.find(selected)
	}

	a.render()
}

func compareBy(key string, x, y *Stock) int {
	switch key {
	case "price":
		return cmp.Compare(x.Price, y.Price)
	case "change":
		return cmp.Compare(x.Change, y.Change)
	case "volume":
		return cmp.Compare(x.Volume, y.Volume)
	default:
		return cmp.Compare(x.Symbol, y.Symbol)
	}
}

func (a *Artifact) toggleRow(symbol string) {
	if a.expanded[symbol] {
		delete(a.expanded, symbol)
	} else {
		a.expanded[symbol] = true
	}
	a.render()
}

func (a *Artifact) selectSector(sector string) {
	a.selectedSector = sector
	a.render()
}

func (a *Artifact) selectStock(stock *Stock) {
	a.selected = stock
	a.render()
}

func (a *Artifact) find(symbol string) *Stock {
	for i := range a.stocks {
		if a.stocks[i].Symbol == symbol {
			return &a.stocks[i]
		}
	}
	return nil
}

// render rebuilds the visible table: the rows of the selected sector, with
// the price range of every expanded row.
func (a *Artifact) render() {
	a.renders++
	a.rows = a.rows[:0]

	for i := range a.stocks {
		stock := &a.stocks[i]
		if a.selectedSector != allSectors && stock.Sector != a.selectedSector {
			continue
		}

		r := row{stock: stock}
		if a.expanded[stock.Symbol] {
			r.low = slices.Min(stock.History)
			r.high = slices.Max(stock.History)
		}
		a.rows = append(a.rows, r)
	}
}

func generateStocks(numStocks, numSectors, chartPoints int) []Stock {
	rand := random.New(seed)
	stocks := make([]Stock, 0, numStocks)

	for i := 0; i < numStocks; i++ {
		basePrice := 20 + rand.NextUnit()*180
		price := basePrice
		history := make([]float64, 0, chartPoints)

		for j := 0; j < chartPoints; j++ {
			price *= 1 + (rand.NextUnit()-0.5)*0.02
			history = append(history, price)
		}

		stocks = append(stocks, Stock{
			Symbol:  fmt.Sprintf("STK%04d", i),
			Name:    fmt.Sprintf("Stock %d", i),
			Sector:  sectorNames[i%numSectors],
			Price:   price,
			Change:  (price - basePrice) / basePrice * 100,
			Volume:  int(rand.NextUnit() * 10000000),
			History: history,
		})
	}

	return stocks
}

func uniqueSectors(stocks []Stock) []string {
	var sectors []string
	for _, stock := range stocks {
		if !slices.Contains(sectors, stock.Sector) {
			sectors = append(sectors, stock.Sector)
		}
	}
	return sectors
}
