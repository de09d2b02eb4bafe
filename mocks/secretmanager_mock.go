// Code written by hand in the shape mockgen would produce for
// secretmanager.SecretManager.

package mocks

import (
	context "context"
	reflect "reflect"

	gomock "github.com/golang/mock/gomock"

	"github.com/shimmerkit/ledgersdk/iotago"
	"github.com/shimmerkit/ledgersdk/secretmanager"
)

// MockSecretManager is a mock of the secretmanager.SecretManager interface.
type MockSecretManager struct {
	ctrl     *gomock.Controller
	recorder *MockSecretManagerMockRecorder
}

// MockSecretManagerMockRecorder is the mock recorder for MockSecretManager.
type MockSecretManagerMockRecorder struct {
	mock *MockSecretManager
}

// NewMockSecretManager creates a new mock instance.
func NewMockSecretManager(ctrl *gomock.Controller) *MockSecretManager {
	mock := &MockSecretManager{ctrl: ctrl}
	mock.recorder = &MockSecretManagerMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockSecretManager) EXPECT() *MockSecretManagerMockRecorder {
	return m.recorder
}

// GenerateEd25519Addresses mocks base method.
func (m *MockSecretManager) GenerateEd25519Addresses(ctx context.Context, coinType, accountIndex, startIndex, count uint32, internal bool) ([]iotago.Address, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GenerateEd25519Addresses", ctx, coinType, accountIndex, startIndex, count, internal)
	ret0, _ := ret[0].([]iotago.Address)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GenerateEd25519Addresses indicates an expected call of GenerateEd25519Addresses.
func (mr *MockSecretManagerMockRecorder) GenerateEd25519Addresses(ctx, coinType, accountIndex, startIndex, count, internal interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GenerateEd25519Addresses", reflect.TypeOf((*MockSecretManager)(nil).GenerateEd25519Addresses), ctx, coinType, accountIndex, startIndex, count, internal)
}

// SignTransaction mocks base method.
func (m *MockSecretManager) SignTransaction(ctx context.Context, essenceBytes []byte, inputPaths []secretmanager.BIP44Path) ([]iotago.Unlock, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SignTransaction", ctx, essenceBytes, inputPaths)
	ret0, _ := ret[0].([]iotago.Unlock)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// SignTransaction indicates an expected call of SignTransaction.
func (mr *MockSecretManagerMockRecorder) SignTransaction(ctx, essenceBytes, inputPaths interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SignTransaction", reflect.TypeOf((*MockSecretManager)(nil).SignTransaction), ctx, essenceBytes, inputPaths)
}
