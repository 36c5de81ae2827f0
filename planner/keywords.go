package planner

import "strings"

// keywordMapping binds one lowercase keyword to the media categories it
// unlocks. The table is ordered so category collection happens in
// first-match order, and it is never mutated after startup.
type keywordMapping struct {
	keyword    string
	categories []string
}

var keywordTable = []keywordMapping{
	// AI and technology
	{"artificial intelligence", []string{"ai"}},
	{"machine learning", []string{"ai"}},
	{"deep learning", []string{"ai"}},
	{"neural network", []string{"ai"}},
	{"chatgpt", []string{"ai"}},
	{"openai", []string{"ai"}},
	{"generative ai", []string{"ai"}},
	{"large language model", []string{"ai"}},
	{"llm", []string{"ai"}},
	{"robot", []string{"technology"}},
	{"robotics", []string{"technology"}},
	{"semiconductor", []string{"technology"}},
	{"chip manufacturing", []string{"technology"}},
	{"cloud computing", []string{"technology"}},
	{"data center", []string{"technology"}},
	{"quantum computing", []string{"technology"}},

	// Cryptocurrency
	{"bitcoin", []string{"bitcoin", "crypto"}},
	{"btc", []string{"bitcoin", "crypto"}},
	{"ethereum", []string{"ethereum", "crypto"}},
	{"cryptocurrency", []string{"crypto"}},
	{"blockchain", []string{"crypto"}},
	{"nft", []string{"crypto"}},

	// Companies
	{"tesla", []string{"tesla", "electric-vehicles", "cars"}},
	{"apple", []string{"apple", "technology"}},
	{"nvidia", []string{"nvidia", "ai", "technology"}},
	{"google", []string{"google", "technology", "ai"}},
	{"microsoft", []string{"microsoft", "technology", "ai"}},
	{"amazon", []string{"amazon", "technology", "ecommerce"}},
	{"meta", []string{"meta", "technology", "social-media"}},
	{"facebook", []string{"meta", "technology", "social-media"}},

	// Markets
	{"stock market", []string{"stock-market"}},
	{"stock price", []string{"stock-market"}},
	{"share price", []string{"stock-market"}},
	{"wall street", []string{"stock-market"}},
	{"nasdaq", []string{"stock-market"}},
	{"dow jones", []string{"stock-market"}},
	{"s&p 500", []string{"stock-market"}},
	{"bull market", []string{"stock-market"}},
	{"bear market", []string{"stock-market"}},
	{"market crash", []string{"stock-market", "crisis"}},
	{"dividend", []string{"stock-market"}},
	{"ipo", []string{"business", "stock-market"}},

	// Banking and money
	{"federal reserve", []string{"banking"}},
	{"central bank", []string{"banking"}},
	{"interest rate hike", []string{"banking"}},
	{"interest rate cut", []string{"banking"}},
	{"rate hike", []string{"banking"}},
	{"rate cut", []string{"banking"}},
	{"inflation rate", []string{"money"}},
	{"consumer price", []string{"money"}},
	{"hyperinflation", []string{"money", "crisis"}},
	{"deflation", []string{"money"}},
	{"currency exchange", []string{"money"}},
	{"foreign exchange", []string{"money"}},
	{"forex", []string{"money"}},
	{"us dollar", []string{"money"}},
	{"japanese yen", []string{"money"}},
	{"euro", []string{"money"}},

	// Business and energy
	{"startup", []string{"business"}},
	{"merger", []string{"business"}},
	{"crude oil", []string{"energy"}},
	{"oil price", []string{"energy"}},
	{"opec", []string{"energy"}},
	{"power grid", []string{"energy"}},
	{"renewable energy", []string{"energy"}},
	{"solar power", []string{"energy"}},
	{"wind power", []string{"energy"}},
	{"nuclear power", []string{"energy"}},
	{"electric vehicle", []string{"electric-vehicles"}},

	// Real estate and crisis
	{"real estate", []string{"real-estate"}},
	{"housing market", []string{"real-estate"}},
	{"property price", []string{"real-estate"}},
	{"mortgage", []string{"real-estate"}},
	{"housing bubble", []string{"real-estate", "crisis"}},
	{"financial crisis", []string{"crisis"}},
	{"economic crisis", []string{"crisis"}},
	{"recession", []string{"crisis"}},
	{"debt crisis", []string{"crisis"}},
	{"banking crisis", []string{"crisis", "banking"}},
	{"bankruptcy", []string{"crisis"}},
	{"gdp growth", []string{"growth", "economy"}},
	{"gdp", []string{"economy"}},
	{"economic growth", []string{"growth", "economy"}},
	{"climate change", []string{"environment"}},
}

// matchCategories returns the categories unlocked by keywords appearing in
// text, deduplicated, in first-match order.
func matchCategories(text string) []string {
	lowered := strings.ToLower(text)

	var matched []string
	seen := make(map[string]bool)
	for _, m := range keywordTable {
		if !strings.Contains(lowered, m.keyword) {
			continue
		}
		for _, c := range m.categories {
			if !seen[c] {
				seen[c] = true
				matched = append(matched, c)
			}
		}
	}
	return matched
}
