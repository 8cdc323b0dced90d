package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/moodtrack/pkg/mood"
)

const dateHelp = "Date as YYYY-MM-DD, today or yesterday. Defaults to today."

func registerTools(srv *server.MCPServer, svc *Service) {
	registerLogMoodTool(srv, svc)
	registerGetMoodTool(srv, svc)
	registerListMoodsTool(srv, svc)
	registerDeleteMoodTool(srv, svc)
	registerWeekTool(srv, svc)
	registerStatsTool(srv, svc)
}

func registerLogMoodTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"log_mood",
		mcp.WithDescription("Record the mood for a day. Logging again for the same day replaces the mood."),
		mcp.WithString("mood",
			mcp.Required(),
			mcp.Description(fmt.Sprintf("Mood index %d-%d or label.", mood.MinIndex, mood.MaxIndex)),
			mcp.Enum(append(mood.Labels(), "0", "1", "2", "3", "4")...),
		),
		mcp.WithString("date",
			mcp.Description(dateHelp),
		),
		mcp.WithArray("emotions",
			mcp.Description("Emotion tags. Omit to keep the stored tags, pass [] to clear them."),
			mcp.WithStringItems(),
		),
		mcp.WithString("journal",
			mcp.Description("Journal note. Omit to keep the stored note."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Mood     string    `json:"mood"`
			Date     string    `json:"date"`
			Emotions *[]string `json:"emotions"`
			Journal  *string   `json:"journal"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		if strings.TrimSpace(args.Mood) == "" {
			return mcp.NewToolResultError("mood is required"), nil
		}

		opts := LogMoodOptions{Date: args.Date, Mood: args.Mood, Journal: args.Journal}
		if args.Emotions != nil {
			opts.Emotions = append([]string{}, *args.Emotions...)
		}
		dto, err := svc.LogMood(ctx, opts)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerGetMoodTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_mood",
		mcp.WithDescription("Fetch the mood logged for a day."),
		mcp.WithString("date",
			mcp.Description(dateHelp),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dto, err := svc.GetMood(ctx, request.GetString("date", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerListMoodsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_moods",
		mcp.WithDescription("List logged moods in date order, optionally between two dates."),
		mcp.WithString("from",
			mcp.Description("First date to include. Defaults to the earliest entry."),
		),
		mcp.WithString("to",
			mcp.Description("Last date to include. Defaults to today when from is set."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		from := request.GetString("from", "")
		to := request.GetString("to", "")
		entries, err := svc.ListMoods(ctx, from, to)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"from":    from,
			"to":      to,
			"count":   len(entries),
			"entries": entries,
		})
	})
}

func registerDeleteMoodTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_mood",
		mcp.WithDescription("Remove the mood logged for a day. Deleting a day with no entry succeeds."),
		mcp.WithString("date",
			mcp.Required(),
			mcp.Description("Date as YYYY-MM-DD, today or yesterday."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		date, err := request.RequireString("date")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		key, err := svc.DeleteMood(ctx, date)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"date": key, "deleted": true})
	})
}

func registerWeekTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"week",
		mcp.WithDescription("Show the Monday-first week containing a day with its moods."),
		mcp.WithString("date",
			mcp.Description(dateHelp),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		w, err := svc.Week(ctx, request.GetString("date", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(w)
	})
}

func registerStatsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"mood_stats",
		mcp.WithDescription("Summarise logged moods: counts per mood, average, most common and current streak."),
		mcp.WithString("from",
			mcp.Description("First date to include. Omit both bounds for all entries."),
		),
		mcp.WithString("to",
			mcp.Description("Last date to include."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		st, err := svc.Stats(ctx, request.GetString("from", ""), request.GetString("to", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"stats":      st,
			"mostCommon": st.MostCommonLabel(),
		})
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
