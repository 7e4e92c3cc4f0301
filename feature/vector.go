package feature

import "math"

// L2Normalize 把向量归一到单位长度。范数为 0 时原样返回（避免除零）。
func L2Normalize(v []float64) []float64 {
	norm := 0.0
	for _, x := range v {
		norm += x * x
	}
	if norm == 0 {
		return v
	}
	norm = math.Sqrt(norm)
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = x / norm
	}
	return out
}

// CosineSimilarity 计算余弦相似度，范围 [-1, 1]。
// 维度不一致或任一向量为零向量时返回 0（防御性默认值，永不报错）。
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0.0
	}
	dot := 0.0
	normA := 0.0
	normB := 0.0
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0.0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Bucketize 把连续值离散化为桶号，thresholds 必须升序。
// 返回第一个大于 value 的阈值下标；value 不小于所有阈值时返回 len(thresholds)；
// value 为 nil（特征缺失）时返回 -1。
func Bucketize(value *float64, thresholds []float64) int {
	if value == nil {
		return -1
	}
	for i, t := range thresholds {
		if *value < t {
			return i
		}
	}
	return len(thresholds)
}
