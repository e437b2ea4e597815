package agent

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/ferd/folio"
	"github.com/ferd/folio/renderer"
)

const model = "gemini-2.5-pro"

// newFacilitator creates the expert that owns the conversation and delegates
// to the others.
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skills from the Tools and ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user is here primarily to understand the state and performance of his stock positions.
			Devise a plan of questions to ask each expert and come up with the best response to the user's request.

			The user will assume that you know about his positions, check the holdings first to understand what they are.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewAnalyst creates the expert grounded by web search, for market news and
// context around the user's positions.
func NewAnalyst() *Expert {
	return &Expert{
		Name: "Analyst",
		Description: `This is an expert market analyst,
		very well aware of financial products, companies and markets,
		and the latest news about them.
		Ask the Analyst whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert market analyst. You can search and find anything related to
			financial institutions, companies and markets. You leverage Google Search to
			ground your assertions in a solid truth.
			You can get the latest news too, and you know how to relate them to the user's request.
				`}}},
		},
	}
}

// NewBookkeeper creates the expert in charge of the user's ledger. It reads
// positions and profit figures through the accounting system.
func NewBookkeeper(accounts *folio.AccountingSystem, prices folio.PriceSource) *Expert {
	lib := []Function{
		holdingsFunc(accounts),
		pnlFunc(accounts, prices),
	}

	return &Expert{
		Name: "Bookkeeper",
		Description: `This is the Bookkeeper. He is in charge of reading the user's position ledger.
		He can report the open positions, their cost basis, and the realized and unrealized profit figures.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are a bookkeeper in charge of the user's position ledger.
				You know how to use the Tools to extract relevant information about the user's positions.
				You are part of a team of experts, yours is everything recorded in the ledger. They might ask
				you questions about the user's positions, pardon their approximative language and figure out what they meant.

				Use the available tools to get information about the user's portfolio
				  - open positions and their cost basis
				  - realized and unrealized profit and loss
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a simple Function.
type Func struct {
	Decl *genai.FunctionDeclaration
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

func funcError(id, name string, err error) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:       id,
		Name:     name,
		Response: map[string]any{"error": err.Error()},
	}
}

func funcOutput(id, name, output string) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:       id,
		Name:     name,
		Response: map[string]any{"output": output},
	}
}

func holdingsFunc(accounts *folio.AccountingSystem) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Holdings",
			Description: `Holdings lists all open positions in the ledger with their quantity,
			average cost per share and total cost basis, plus the realized profit so far.`,
			Parameters: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: map[string]*genai.Schema{},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted table of the open positions.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			view := renderer.NewHoldings(accounts.Snapshot())
			return funcOutput(id, "Holdings", renderer.HoldingsMarkdown(view))
		},
	}
}

func pnlFunc(accounts *folio.AccountingSystem, prices folio.PriceSource) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "ProfitAndLoss",
			Description: `ProfitAndLoss evaluates the open positions against live market prices.
			It reports per-position unrealized profit, the portfolio return percentage,
			and the cumulative realized profit.`,
			Parameters: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: map[string]*genai.Schema{},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted profit and loss report.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			current, err := prices.LatestPrices(ctx, accounts.Symbols())
			if err != nil {
				return funcError(id, "ProfitAndLoss", fmt.Errorf("could not fetch prices: %w", err))
			}
			return funcOutput(id, "ProfitAndLoss", renderer.PnLMarkdown(accounts.PnL(current)))
		},
	}
}
