package model

import (
	"math"
	"math/rand"
)

// mlp 是塔内数值分支用的小型全连接网络（前向推理，无训练）。
// dims 形如 [8, 32, 32]：输入 8 维，两层各 32 个神经元；隐层 ReLU，末层不激活。
type mlp struct {
	dims    []int
	weights [][][]float64 // weights[layer][neuron][input]
	biases  [][]float64   // biases[layer][neuron]
}

// newMLP 按 Xavier 尺度用注入的随机源初始化权重。
// 随机源由固定 seed 派生，同一 seed 构建出的网络逐位一致。
func newMLP(dims []int, rng *rand.Rand) *mlp {
	m := &mlp{
		dims:    dims,
		weights: make([][][]float64, len(dims)-1),
		biases:  make([][]float64, len(dims)-1),
	}
	for layer := 0; layer < len(dims)-1; layer++ {
		in, out := dims[layer], dims[layer+1]
		scale := math.Sqrt(2.0 / float64(in+out))
		m.weights[layer] = make([][]float64, out)
		m.biases[layer] = make([]float64, out)
		for j := 0; j < out; j++ {
			m.weights[layer][j] = make([]float64, in)
			for k := 0; k < in; k++ {
				m.weights[layer][j][k] = (rng.Float64()*2 - 1) * scale
			}
		}
	}
	return m
}

// forward 前向传播。输入长度与 dims[0] 不符时截断/补零。
func (m *mlp) forward(input []float64) []float64 {
	current := make([]float64, m.dims[0])
	copy(current, input)

	for layer := 0; layer < len(m.dims)-1; layer++ {
		next := make([]float64, m.dims[layer+1])
		for j := range next {
			sum := m.biases[layer][j]
			for k, w := range m.weights[layer][j] {
				sum += w * current[k]
			}
			if layer < len(m.dims)-2 {
				next[j] = relu(sum)
			} else {
				next[j] = sum
			}
		}
		current = next
	}
	return current
}

func relu(x float64) float64 {
	if x > 0 {
		return x
	}
	return 0
}
