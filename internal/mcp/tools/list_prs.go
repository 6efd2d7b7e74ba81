package tools

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jvaz/prdeck/internal/controller"
	"github.com/jvaz/prdeck/internal/github"
	"github.com/jvaz/prdeck/internal/pullreq"
)

// ItemService is the slice of the controller the tools consume.
type ItemService interface {
	BuildItems(ctx context.Context, prType controller.PRType, predicate pullreq.Predicate, includeApprovedButton bool) ([]controller.DisplayItem, error)
}

type itemView struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Icon     string `json:"icon"`
	URL      string `json:"url,omitempty"`
}

func viewItems(items []controller.DisplayItem) []itemView {
	views := make([]itemView, 0, len(items))
	for _, it := range items {
		views = append(views, itemView{
			Title:    it.Title,
			Subtitle: it.Subtitle,
			Icon:     it.Icon.String(),
			URL:      it.Primary.URL,
		})
	}
	return views
}

// resultError renders a fetch failure the way the launcher does: one
// error-state result in place of the list.
func resultError(err error) (*mcp.CallToolResult, error) {
	var fetchErr *github.FetchError
	if errors.As(err, &fetchErr) {
		return mcp.NewToolResultError(fetchErr.Title + ": " + fetchErr.Description), nil
	}
	return nil, err
}

type ListOpenPRsHandler struct {
	Service ItemService
}

func (h *ListOpenPRsHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	query, _ := args["query"].(string)

	items, err := h.Service.BuildItems(ctx, controller.PRTypeOpen, pullreq.MatchPredicate(query), false)
	if err != nil {
		return resultError(err)
	}
	return mcp.NewToolResultText(string(mustMarshal(viewItems(items)))), nil
}

type ListApprovedPRsHandler struct {
	Service ItemService
}

func (h *ListApprovedPRsHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	items, err := h.Service.BuildItems(ctx, controller.PRTypeApproved, nil, false)
	if err != nil {
		return resultError(err)
	}
	return mcp.NewToolResultText(string(mustMarshal(viewItems(items)))), nil
}
