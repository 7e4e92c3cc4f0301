// Package feature 提供打分链路的叶子数值工具：文本哈希向量化、向量运算、
// 时间衰减权重与塔模型的数值特征抽取。全部为纯函数，无共享状态。
package feature

import (
	"hash/fnv"
	"strings"
)

// Vectorize 把文本映射为 dim 维向量：无词表的哈希向量化。
//
// 对小写化文本的每个空白分隔 token：
//   - bucket = fnv32a(token) % dim
//   - sign   = +1（fnv32a(token+"_") 为偶数）/ -1（为奇数）
//   - vector[bucket] += sign
//
// 符号位用第二次哈希决定，抵消不同 token 落入同一 bucket 时的系统性偏置。
// FNV-1a 跨进程稳定，同一 (text, dim) 的结果可复现，这是正确性要求而不只是实现细节。
// 空文本或 dim<=0 返回零向量。
func Vectorize(text string, dim int) []float64 {
	if dim <= 0 {
		return nil
	}
	vec := make([]float64, dim)
	if text == "" {
		return vec
	}
	for _, token := range strings.Fields(strings.ToLower(text)) {
		bucket := int(hash32(token) % uint32(dim))
		sign := 1.0
		if hash32(token+"_")%2 == 1 {
			sign = -1.0
		}
		vec[bucket] += sign
	}
	return vec
}

// TokenID 把 token 映射为 [0, vocabSize) 的离散 id，供双塔模型的嵌入查表使用。
func TokenID(token string, vocabSize int) int {
	if vocabSize <= 0 {
		return 0
	}
	return int(hash32(strings.ToLower(token)) % uint32(vocabSize))
}

// Tokenize 按空白切分小写化文本。
func Tokenize(text string) []string {
	return strings.Fields(strings.ToLower(text))
}

func hash32(s string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(s))
	return h.Sum32()
}
