package utils

import (
	"math/rand"
	"time"
)

// PRNGService 可设定种子的随机数服务
// 模拟中所有随机决策（护盾概率、仆从种类）都从同一个实例取值，
// 同一种子与同一指令序列下结果完全可复现。
type PRNGService struct {
	seed int64
	rng  *rand.Rand
}

// NewPRNGService 创建新的随机数服务
// 如果种子为 0，使用当前时间
func NewPRNGService(seed int64) *PRNGService {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &PRNGService{
		seed: seed,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// Seed 返回实际使用的种子
func (s *PRNGService) Seed() int64 {
	return s.seed
}

// Intn 返回 [0, n) 范围内的随机整数
func (s *PRNGService) Intn(n int) int {
	return s.rng.Intn(n)
}

// Float64 返回 [0.0, 1.0) 范围内的随机浮点数
func (s *PRNGService) Float64() float64 {
	return s.rng.Float64()
}

// Chance 以概率 p 返回 true
// 无论 p 取值如何都会消耗一次随机数，保证序列与判定结果无关
func (s *PRNGService) Chance(p float64) bool {
	return s.rng.Float64() < p
}
