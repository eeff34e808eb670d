package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LENAX/chain-engine/pkg/cli/client"
	"github.com/LENAX/chain-engine/pkg/cli/output"
)

var (
	historyStatus string
	historyLimit  int
	historyOffset int
)

// historyCmd history子命令
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "计算历史查询命令",
	Long:  `查询服务端记录的计算历史（需要服务端启用数据库存储）。`,
}

// historyListCmd 列出计算记录
var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "列出计算记录",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(serverURL)
		result, err := c.ListHistory(cmd.Context(), historyStatus, historyLimit, historyOffset)
		if err != nil {
			output.Error("查询失败: %v", err)
			return err
		}

		if outputJSON {
			return output.FprintJSON(cmd.OutOrStdout(), result)
		}

		if len(result.Items) == 0 {
			output.Info("暂无计算记录")
			return nil
		}

		table := output.NewTable([]string{"ID", "STATUS", "FIRST", "LAST", "EDGES", "CACHED", "CREATED"})
		for _, rec := range result.Items {
			table.AddRow([]string{
				rec.ID,
				formatStatus(rec.Status, rec.ErrorKind),
				orDash(rec.First),
				orDash(rec.Last),
				fmt.Sprintf("%d", rec.EdgeCount),
				fmt.Sprintf("%t", rec.Cached),
				rec.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			})
		}
		table.RenderTo(cmd.OutOrStdout())
		if result.HasMore {
			output.Info("共%d条，使用 --offset 查看更多", result.Total)
		}
		return nil
	},
}

// historyShowCmd 查看计算记录
var historyShowCmd = &cobra.Command{
	Use:   "show <record-id>",
	Short: "查看计算记录详情",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(serverURL)
		rec, err := c.GetHistory(cmd.Context(), args[0])
		if err != nil {
			output.Error("查询失败: %v", err)
			return err
		}

		out := cmd.OutOrStdout()
		if outputJSON {
			return output.FprintJSON(out, rec)
		}

		fmt.Fprintf(out, "ID:          %s\n", rec.ID)
		fmt.Fprintf(out, "Request ID:  %s\n", orDash(rec.RequestID))
		fmt.Fprintf(out, "Status:      %s\n", formatStatus(rec.Status, rec.ErrorKind))
		fmt.Fprintf(out, "Fingerprint: %s\n", rec.Fingerprint)
		fmt.Fprintf(out, "Edges/Nodes: %d/%d\n", rec.EdgeCount, rec.NodeCount)
		if rec.ErrorMessage != "" {
			fmt.Fprintf(out, "Error:       %s\n", rec.ErrorMessage)
		} else {
			fmt.Fprintf(out, "First:       %s\n", rec.First)
			fmt.Fprintf(out, "Last:        %s\n", rec.Last)
		}
		fmt.Fprintf(out, "Cached:      %t\n", rec.Cached)
		fmt.Fprintf(out, "Duration:    %s\n", rec.Duration)
		fmt.Fprintf(out, "Created:     %s\n", rec.CreatedAt.Local().Format("2006-01-02 15:04:05"))
		return nil
	},
}

// historyPurgeCmd 清理过期计算记录
var historyPurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "立即删除超过保留期的计算记录",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(serverURL)
		deleted, err := c.PurgeHistory(cmd.Context())
		if err != nil {
			output.Error("清理失败: %v", err)
			return err
		}
		if outputJSON {
			return output.FprintJSON(cmd.OutOrStdout(), map[string]int64{"deleted": deleted})
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted: %d\n", deleted)
		return nil
	},
}

// formatStatus 格式化状态显示
func formatStatus(status, kind string) string {
	switch status {
	case "success":
		return "✅ success"
	case "failed":
		if kind != "" {
			return "❌ failed (" + kind + ")"
		}
		return "❌ failed"
	default:
		return status
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func init() {
	historyListCmd.Flags().StringVar(&historyStatus, "status", "", "按状态过滤（success/failed）")
	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "返回条数")
	historyListCmd.Flags().IntVar(&historyOffset, "offset", 0, "偏移量")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyPurgeCmd)
}
