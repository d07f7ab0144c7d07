package main

import (
	"fmt"
	"strings"

	"github.com/Ravenry/kacamerah/internal/fetch"
	"github.com/Ravenry/kacamerah/internal/grid"
	"github.com/Ravenry/kacamerah/internal/logic"
	"github.com/Ravenry/kacamerah/internal/table"

	"github.com/spf13/cobra"
)

var (
	browseBaseURL string
	browseQuery   string
	browsePage    int
	browsePerPage int
	browseSort    string
	browseView    string
	browseOr      bool
)

var browseCmd = &cobra.Command{
	Use:   "browse <table>",
	Short: "在终端中浏览表格数据",
	Long:  `按查询参数请求运行中的服务，并以表格形式输出当前页。`,
	Example: `  kacamerah browse clients --query "industry=FinTech" --per-page 20
  kacamerah browse tasks --sort dueDate.asc --page 2
  kacamerah browse tasks --view 3f0c...`,
	Args: cobra.ExactArgs(1),
	RunE: runBrowse,
}

func init() {
	f := browseCmd.Flags()
	f.StringVar(&browseBaseURL, "base-url", "http://localhost:8080", "服务地址")
	f.StringVarP(&browseQuery, "query", "q", "", "查询串，例如 page=2&status=todo")
	f.IntVar(&browsePage, "page", 0, "页码")
	f.IntVar(&browsePerPage, "per-page", 0, "每页条数")
	f.StringVar(&browseSort, "sort", "", "排序，格式 column.asc 或 column.desc")
	f.StringVar(&browseView, "view", "", "应用保存视图")
	f.BoolVar(&browseOr, "or", false, "过滤条件之间使用 OR")
}

func runBrowse(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	entity := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	registry := logic.NewRegistry(cfg.Table)
	schema, ok := registry.Get(entity)
	if !ok {
		return fmt.Errorf("未知的表格 %q，可选: %s", entity, strings.Join(registry.Entities(), ", "))
	}
	client := fetch.New(browseBaseURL, registry)

	ctrl := table.NewController(schema, strings.TrimPrefix(browseQuery, "?"), nil)
	if browseView != "" {
		views, err := client.Views(ctx, entity)
		if err != nil {
			return err
		}
		found := false
		for i := range views {
			if views[i].ID == browseView {
				ctrl.ApplyView(logic.ViewConfigOf(&views[i]))
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("视图 %q 不存在", browseView)
		}
	}
	if browseSort != "" {
		item, ok := table.ParseSortItem(browseSort)
		if !ok || !ctrl.SetSort(item.Column, item.Direction) {
			return fmt.Errorf("无效的排序 %q", browseSort)
		}
	}
	if browseOr {
		ctrl.SetOperator(table.Or)
	}
	if browsePerPage > 0 {
		ctrl.SetPerPage(browsePerPage)
	}
	if browsePage > 0 {
		ctrl.SetPage(browsePage)
	}

	state := ctrl.State()
	var rows []map[string]any
	page, err := client.Fetch(ctx, entity, state, &rows)
	if err != nil {
		return err
	}

	proj := ctrl.Projection(page.PageCount)
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, grid.Render(grid.Layout(schema.Columns, proj.State), rows))
	fmt.Fprintf(out, "第 %d/%d 页，共 %d 条\n", proj.State.Page, max(proj.PageCount, 1), page.Total)
	return nil
}
