package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/LENAX/chain-engine/pkg/api/dto"
	"github.com/LENAX/chain-engine/pkg/cli/client"
	"github.com/LENAX/chain-engine/pkg/cli/output"
	"github.com/LENAX/chain-engine/pkg/core/chain"
)

var (
	calcFile  string
	calcLocal bool
	calcPath  bool
)

// calculateCmd calculate命令
var calculateCmd = &cobra.Command{
	Use:   "calculate [FROM:TO ...]",
	Short: "计算链的首尾节点",
	Long: `计算一组先后关系构成的链的首尾节点。

先后关系的来源（按优先级）：
  1. 命令行参数，形如 FROM:TO
  2. --file 指定的JSON文件（"-" 表示标准输入），格式为 [["A","B"],["B","C"]]
  3. 标准输入中的JSON

参数形式按第一个冒号切分，FROM 不能包含冒号；含冒号的标签请通过 --file 或标准输入传入。

示例：
  chain-engine calculate --local SFO:ATL ATL:EWR
  echo '[["ATL","EWR"],["SFO","ATL"]]' | chain-engine calculate
  chain-engine calculate --file pairs.json --path`,
	RunE: func(cmd *cobra.Command, args []string) error {
		pairs, err := readPairs(args, calcFile, cmd.InOrStdin())
		if err != nil {
			output.Error("读取输入失败: %v", err)
			return err
		}

		out := cmd.OutOrStdout()
		if calcPath {
			path, err := resolvePath(cmd, pairs)
			if err != nil {
				output.Error("计算失败: %v", err)
				return err
			}
			if outputJSON {
				return output.FprintJSON(out, path)
			}
			fmt.Fprintln(out, strings.Join(path, " -> "))
			return nil
		}

		res, err := calculate(cmd, pairs)
		if err != nil {
			output.Error("计算失败: %v", err)
			return err
		}
		if outputJSON {
			return output.FprintJSON(out, []string{res.First, res.Last})
		}
		fmt.Fprintf(out, "first: %s\nlast:  %s\n", res.First, res.Last)
		return nil
	},
}

func calculate(cmd *cobra.Command, pairs []chain.Pair) (chain.Result, error) {
	if calcLocal {
		return chain.Calculate(pairs)
	}
	return client.New(serverURL).Calculate(cmd.Context(), pairs)
}

func resolvePath(cmd *cobra.Command, pairs []chain.Pair) ([]string, error) {
	if calcLocal {
		return chain.Resolve(pairs)
	}
	resp, err := client.New(serverURL).Path(cmd.Context(), pairs)
	if err != nil {
		return nil, err
	}
	return resp.Path, nil
}

// readPairs 从参数、文件或标准输入读取先后关系
func readPairs(args []string, file string, stdin io.Reader) ([]chain.Pair, error) {
	if len(args) > 0 {
		return parsePairArgs(args)
	}

	var r io.Reader
	switch file {
	case "", "-":
		r = stdin
	default:
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("打开文件失败: %w", err)
		}
		defer f.Close()
		r = f
	}

	var req dto.CalculateRequest
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("没有输入")
		}
		return nil, fmt.Errorf("解析JSON失败: %w", err)
	}
	return req.Pairs(), nil
}

// parsePairArgs 解析 FROM:TO 形式的参数
func parsePairArgs(args []string) ([]chain.Pair, error) {
	pairs := make([]chain.Pair, 0, len(args))
	for _, arg := range args {
		from, to, ok := strings.Cut(arg, ":")
		if !ok || from == "" || to == "" {
			return nil, fmt.Errorf("参数格式错误 %q，应为 FROM:TO", arg)
		}
		pairs = append(pairs, chain.P(from, to))
	}
	return pairs, nil
}

func init() {
	calculateCmd.Flags().StringVarP(&calcFile, "file", "f", "", "JSON输入文件（\"-\" 表示标准输入）")
	calculateCmd.Flags().BoolVarP(&calcLocal, "local", "l", false, "在本地计算，不调用服务")
	calculateCmd.Flags().BoolVarP(&calcPath, "path", "p", false, "输出完整的链")
}
