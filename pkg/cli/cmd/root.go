package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	// 全局变量
	serverURL  string
	outputJSON bool
)

// rootCmd 根命令
var rootCmd = &cobra.Command{
	Use:   "chain-engine",
	Short: "Chain Engine CLI - 链首尾计算命令行工具",
	Long: `Chain Engine CLI 根据一组 "A 在 B 之前" 的先后关系计算链的首尾节点。

支持的功能：
  - 计算链的首尾节点或完整顺序（本地计算或调用服务）
  - 查询计算历史
  - 启动HTTP API服务

使用示例：
  # 本地计算
  chain-engine calculate --local SFO:ATL ATL:EWR

  # 通过服务计算，输入为JSON文件
  chain-engine calculate --file pairs.json

  # 查看计算历史
  chain-engine history list --status failed

  # 启动HTTP服务
  chain-engine server start --port 8080`,
	SilenceUsage: true,
}

// Execute 执行根命令
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// 全局参数
	rootCmd.PersistentFlags().StringVarP(&serverURL, "server", "s", "http://127.0.0.1:8080", "Chain Engine服务器地址")
	rootCmd.PersistentFlags().BoolVarP(&outputJSON, "json", "j", false, "使用JSON格式输出")

	// 添加子命令
	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(versionCmd)
}
