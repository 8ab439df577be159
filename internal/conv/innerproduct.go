package conv

import (
	"github.com/born-ml/skipconv/internal/params"
	"github.com/born-ml/skipconv/internal/tensor"
)

// InnerProduct is the fully-connected operator the convolution dispatches to
// when it receives a flattened 1D blob and a 1x1 kernel. It shares the
// convolution's activation family and weight layout [num_output, num_input].
type InnerProduct struct {
	NumOutput      int
	BiasTerm       bool
	WeightDataSize int

	ActivationType   ActivationType
	ActivationParams []float32

	WeightData []float32
	BiasData   []float32
}

// InnerProduct parameter-table ids.
const (
	ipParamNumOutput       = 0
	ipParamBiasTerm        = 1
	ipParamWeightDataSize  = 2
	ipParamActivationType  = 9
	ipParamActivationParam = 10
)

// LoadParam reads the operator configuration from a parameter dictionary.
func (ip *InnerProduct) LoadParam(pd *params.Dict) error {
	ip.NumOutput = pd.GetInt(ipParamNumOutput, 0)
	ip.BiasTerm = pd.GetInt(ipParamBiasTerm, 0) != 0
	ip.WeightDataSize = pd.GetInt(ipParamWeightDataSize, 0)
	ip.ActivationType = ActivationType(pd.GetInt(ipParamActivationType, 0))
	ip.ActivationParams = pd.GetFloats(ipParamActivationParam)
	return nil
}

// LoadModel reads weight_data and, when bias_term is set, bias_data.
func (ip *InnerProduct) LoadModel(mb *params.ModelBin) error {
	weights, err := mb.Load(ip.WeightDataSize)
	if err != nil {
		return errAlloc(err)
	}
	ip.WeightData = weights

	if ip.BiasTerm {
		bias, err := mb.Load(ip.NumOutput)
		if err != nil {
			return errAlloc(err)
		}
		ip.BiasData = bias
	}
	return nil
}

// Forward computes out[k] = activation(bias[k] + sum_n x[n] * W[k,n]) for a
// 1D input of length num_input.
func (ip *InnerProduct) Forward(bottom *tensor.RawTensor, opt Options) (*tensor.RawTensor, error) {
	if len(bottom.Shape()) != 1 {
		return nil, errConfig("innerproduct: input must be 1D, got %dD", len(bottom.Shape()))
	}
	if ip.NumOutput <= 0 {
		return nil, errConfig("innerproduct: num_output not set")
	}
	numInput := ip.WeightDataSize / ip.NumOutput
	if bottom.Shape()[0] != numInput {
		return nil, errConfig("innerproduct: input length %d, want %d", bottom.Shape()[0], numInput)
	}
	if len(ip.WeightData) != ip.WeightDataSize {
		return nil, errConfig("innerproduct: weights not loaded")
	}

	top, err := tensor.AllocWith(opt.BlobAllocator, tensor.Shape{ip.NumOutput}, tensor.Float32)
	if err != nil {
		return nil, errAlloc(err)
	}

	in := bottom.AsFloat32()
	out := top.AsFloat32()

	for k := 0; k < ip.NumOutput; k++ {
		var y float32
		if ip.BiasTerm {
			y = ip.BiasData[k]
		}
		kptr := ip.WeightData[k*numInput:]
		for n := 0; n < numInput; n++ {
			y += in[n] * kptr[n]
		}
		out[k] = applyActivation(y, ip.ActivationType, ip.ActivationParams)
	}

	return top, nil
}

// forwardAsInnerProduct builds a transient InnerProduct from the
// convolution's own weights and runs it on the flattened blob.
func (c *Convolution) forwardAsInnerProduct(bottom *tensor.RawTensor, opt Options) (*tensor.RawTensor, error) {
	ip := &InnerProduct{
		NumOutput:        c.NumOutput,
		BiasTerm:         c.BiasTerm,
		WeightDataSize:   c.WeightDataSize,
		ActivationType:   c.ActivationType,
		ActivationParams: c.ActivationParams,
		WeightData:       c.WeightData,
		BiasData:         c.BiasData,
	}
	return ip.Forward(bottom, opt)
}
