//go:build mobile

// embed.go - 移动端内容表嵌入声明
//
// 此文件仅在使用 -tags mobile 构建时编译。
// 构建前需要把仓库根目录的 data/ 复制到本目录：
//
//	cp -r data mobile/data
//	go build -tags mobile ./mobile
package mobile

import "embed"

//go:embed data/*.yaml
var dataFS embed.FS
