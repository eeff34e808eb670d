package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LENAX/chain-engine/pkg/cli/client"
	"github.com/LENAX/chain-engine/pkg/cli/output"
)

// cacheCmd cache子命令
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "服务端结果缓存管理命令",
}

// cacheClearCmd 清理结果缓存
var cacheClearCmd = &cobra.Command{
	Use:   "clear [fingerprint]",
	Short: "清空结果缓存，或删除指定指纹的缓存",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(serverURL)
		out := cmd.OutOrStdout()

		if len(args) == 1 {
			if err := c.EvictCache(cmd.Context(), args[0]); err != nil {
				output.Error("删除缓存失败: %v", err)
				return err
			}
			fmt.Fprintf(out, "evicted: %s\n", args[0])
			return nil
		}

		cleared, err := c.ClearCache(cmd.Context())
		if err != nil {
			output.Error("清空缓存失败: %v", err)
			return err
		}
		if outputJSON {
			return output.FprintJSON(out, map[string]int{"cleared": cleared})
		}
		fmt.Fprintf(out, "cleared: %d\n", cleared)
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
}
