// Code written by hand in the shape mockgen would produce for
// client.NodeClient (the toolchain that generates these is never invoked
// in this exercise, per SPEC_FULL.md §1 Test tooling).

package mocks

import (
	context "context"
	reflect "reflect"

	gomock "github.com/golang/mock/gomock"

	"github.com/shimmerkit/ledgersdk/client"
	"github.com/shimmerkit/ledgersdk/ids"
	"github.com/shimmerkit/ledgersdk/iotago"
)

// MockNodeClient is a mock of the client.NodeClient interface.
type MockNodeClient struct {
	ctrl     *gomock.Controller
	recorder *MockNodeClientMockRecorder
}

// MockNodeClientMockRecorder is the mock recorder for MockNodeClient.
type MockNodeClientMockRecorder struct {
	mock *MockNodeClient
}

// NewMockNodeClient creates a new mock instance.
func NewMockNodeClient(ctrl *gomock.Controller) *MockNodeClient {
	mock := &MockNodeClient{ctrl: ctrl}
	mock.recorder = &MockNodeClientMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockNodeClient) EXPECT() *MockNodeClientMockRecorder {
	return m.recorder
}

// Info mocks base method.
func (m *MockNodeClient) Info(ctx context.Context) (*client.Info, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Info", ctx)
	ret0, _ := ret[0].(*client.Info)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Info indicates an expected call of Info.
func (mr *MockNodeClientMockRecorder) Info(ctx interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Info", reflect.TypeOf((*MockNodeClient)(nil).Info), ctx)
}

// Outputs mocks base method.
func (m *MockNodeClient) Outputs(ctx context.Context, outputIDs []ids.OutputID) ([]iotago.UTXO, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Outputs", ctx, outputIDs)
	ret0, _ := ret[0].([]iotago.UTXO)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Outputs indicates an expected call of Outputs.
func (mr *MockNodeClientMockRecorder) Outputs(ctx, outputIDs interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Outputs", reflect.TypeOf((*MockNodeClient)(nil).Outputs), ctx, outputIDs)
}

// OutputsMetadata mocks base method.
func (m *MockNodeClient) OutputsMetadata(ctx context.Context, outputIDs []ids.OutputID) ([]client.OutputMetadata, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "OutputsMetadata", ctx, outputIDs)
	ret0, _ := ret[0].([]client.OutputMetadata)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// OutputsMetadata indicates an expected call of OutputsMetadata.
func (mr *MockNodeClientMockRecorder) OutputsMetadata(ctx, outputIDs interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "OutputsMetadata", reflect.TypeOf((*MockNodeClient)(nil).OutputsMetadata), ctx, outputIDs)
}

// IndexerQuery mocks base method.
func (m *MockNodeClient) IndexerQuery(ctx context.Context, q client.IndexerQuery) ([]ids.OutputID, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "IndexerQuery", ctx, q)
	ret0, _ := ret[0].([]ids.OutputID)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// IndexerQuery indicates an expected call of IndexerQuery.
func (mr *MockNodeClientMockRecorder) IndexerQuery(ctx, q interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "IndexerQuery", reflect.TypeOf((*MockNodeClient)(nil).IndexerQuery), ctx, q)
}

// ChainOutput mocks base method.
func (m *MockNodeClient) ChainOutput(ctx context.Context, chainID ids.ID) (*iotago.UTXO, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ChainOutput", ctx, chainID)
	ret0, _ := ret[0].(*iotago.UTXO)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ChainOutput indicates an expected call of ChainOutput.
func (mr *MockNodeClientMockRecorder) ChainOutput(ctx, chainID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ChainOutput", reflect.TypeOf((*MockNodeClient)(nil).ChainOutput), ctx, chainID)
}

// SubmitBlock mocks base method.
func (m *MockNodeClient) SubmitBlock(ctx context.Context, block []byte) (iotago.BlockID, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SubmitBlock", ctx, block)
	ret0, _ := ret[0].(iotago.BlockID)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// SubmitBlock indicates an expected call of SubmitBlock.
func (mr *MockNodeClientMockRecorder) SubmitBlock(ctx, block interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SubmitBlock", reflect.TypeOf((*MockNodeClient)(nil).SubmitBlock), ctx, block)
}

// TransactionState mocks base method.
func (m *MockNodeClient) TransactionState(ctx context.Context, txID ids.ID) (*client.TransactionMetadata, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "TransactionState", ctx, txID)
	ret0, _ := ret[0].(*client.TransactionMetadata)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// TransactionState indicates an expected call of TransactionState.
func (mr *MockNodeClientMockRecorder) TransactionState(ctx, txID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "TransactionState", reflect.TypeOf((*MockNodeClient)(nil).TransactionState), ctx, txID)
}

// IncludedBlock mocks base method.
func (m *MockNodeClient) IncludedBlock(ctx context.Context, txID ids.ID) (*client.IncludedBlock, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "IncludedBlock", ctx, txID)
	ret0, _ := ret[0].(*client.IncludedBlock)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// IncludedBlock indicates an expected call of IncludedBlock.
func (mr *MockNodeClientMockRecorder) IncludedBlock(ctx, txID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "IncludedBlock", reflect.TypeOf((*MockNodeClient)(nil).IncludedBlock), ctx, txID)
}
