package main

import (
	"github.com/shouni/go-pixetale/cmd"
)

// main はアプリケーションの唯一のエントリーポイントなのだ！
func main() {
	cmd.Execute()
}
