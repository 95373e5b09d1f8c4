// Package engine is the client-side view of the business network runtime.
// Every method forwards a named chaincode function to a Connector; the
// Java Engine interface is generated from this method set.
package engine

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/Fabric-Examples/composer-sdk-java-example/internal/codegen/meta"
)

// Connector submits chaincode functions to a peer.
type Connector interface {
	QueryChaincode(ctx context.Context, function string, args ...string) (string, error)
	InvokeChaincode(ctx context.Context, function string, args ...string) (string, error)
}

// CallOptions controls how Init and Invoke reach the connector.
type CallOptions struct {
	// ReadOnly routes the call through QueryChaincode, which does not commit.
	ReadOnly bool
}

// ErrArgumentCount is returned when a call's arguments do not match the
// method's declared parameters.
var ErrArgumentCount = errors.New("wrong number of arguments")

// Engine forwards runtime calls to a Connector.
type Engine struct {
	conn Connector
}

// New returns an Engine using conn.
func New(conn Connector) *Engine {
	return &Engine{conn: conn}
}

var methodParams = map[string][]meta.Param{
	"SubmitTransaction": {
		{Name: "transactionJson", Type: meta.ParamString},
	},
	"GetResourceInRegistry": {
		{Name: "registryType", Type: meta.ParamString},
		{Name: "registryId", Type: meta.ParamString},
		{Name: "resourceId", Type: meta.ParamString},
	},
	"GetAllResourcesInRegistry": {
		{Name: "registryType", Type: meta.ParamString},
		{Name: "registryId", Type: meta.ParamString},
	},
	"ExecuteQuery": {
		{Name: "queryType", Type: meta.ParamString},
		{Name: "query", Type: meta.ParamString},
		{Name: "parameters", Type: meta.ParamString},
	},
	"Ping": {},
}

// MethodParams publishes the parameters each two-argument method expects
// in its args slice.
func (e *Engine) MethodParams() map[string][]meta.Param {
	out := make(map[string][]meta.Param, len(methodParams))
	for k, v := range methodParams {
		out[k] = append([]meta.Param(nil), v...)
	}
	return out
}

// SubmitTransaction submits a serialized transaction. args: transactionJson.
func (e *Engine) SubmitTransaction(ctx context.Context, args []string) (string, error) {
	return e.invoke(ctx, "SubmitTransaction", "submitTransaction", args)
}

// GetResourceInRegistry reads one resource. args: registryType, registryId, resourceId.
func (e *Engine) GetResourceInRegistry(ctx context.Context, args []string) (string, error) {
	return e.query(ctx, "GetResourceInRegistry", "getResourceInRegistry", args)
}

// GetAllResourcesInRegistry lists every resource of a registry. args: registryType, registryId.
func (e *Engine) GetAllResourcesInRegistry(ctx context.Context, args []string) (string, error) {
	return e.query(ctx, "GetAllResourcesInRegistry", "getAllResourcesInRegistry", args)
}

// ExecuteQuery runs a named or ad hoc query. args: queryType, query, parameters.
func (e *Engine) ExecuteQuery(ctx context.Context, args []string) (string, error) {
	return e.query(ctx, "ExecuteQuery", "executeQuery", args)
}

// Ping checks that the business network is reachable. It takes no args.
func (e *Engine) Ping(ctx context.Context, args []string) (string, error) {
	return e.query(ctx, "Ping", "ping", args)
}

// Init calls the chaincode's init entry point with fcn and args.
func (e *Engine) Init(ctx context.Context, fcn string, args []string, opts CallOptions) (string, error) {
	return e.call(ctx, opts, "init", append([]string{fcn}, args...))
}

// Invoke calls fcn on the chaincode with args.
func (e *Engine) Invoke(ctx context.Context, fcn string, args []string, opts CallOptions) (string, error) {
	return e.call(ctx, opts, fcn, args)
}

func (e *Engine) query(ctx context.Context, method, function string, args []string) (string, error) {
	if err := checkArgs(method, args); err != nil {
		return "", err
	}
	return e.call(ctx, CallOptions{ReadOnly: true}, function, args)
}

func (e *Engine) invoke(ctx context.Context, method, function string, args []string) (string, error) {
	if err := checkArgs(method, args); err != nil {
		return "", err
	}
	return e.call(ctx, CallOptions{}, function, args)
}

func (e *Engine) call(ctx context.Context, opts CallOptions, function string, args []string) (string, error) {
	if e.conn == nil {
		return "", errors.Newf("%s: engine has no connector", function)
	}
	var (
		out string
		err error
	)
	if opts.ReadOnly {
		out, err = e.conn.QueryChaincode(ctx, function, args...)
	} else {
		out, err = e.conn.InvokeChaincode(ctx, function, args...)
	}
	if err != nil {
		return "", errors.Wrapf(err, "chaincode %s", function)
	}
	return out, nil
}

func checkArgs(method string, args []string) error {
	want := len(methodParams[method])
	if len(args) != want {
		return errors.Wrapf(ErrArgumentCount, "%s expects %d arguments, got %d", method, want, len(args))
	}
	return nil
}
