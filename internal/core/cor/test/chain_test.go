// Copyright 2024 Google, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cor_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jaycherian/gcp-go-fashion-director/internal/core/cor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type appendCommand struct {
	cor.BaseCommand
	suffix string
	fail   bool
	ran    *[]string
}

func newAppend(name, suffix string, fail bool, ran *[]string) *appendCommand {
	return &appendCommand{BaseCommand: *cor.NewBaseCommand(name), suffix: suffix, fail: fail, ran: ran}
}

func (a *appendCommand) Execute(context cor.Context) {
	*a.ran = append(*a.ran, a.GetName())
	if a.fail {
		a.Fail(context, errors.New("boom"))
		return
	}
	in, _ := cor.GetAs[string](context, a.GetInputParam())
	context.Add(a.GetOutputParam(), in+a.suffix)
	a.Succeed(context)
}

func newContext(ctx context.Context, in interface{}) cor.Context {
	c := cor.NewBaseContext()
	c.SetContext(ctx)
	if in != nil {
		c.Add(cor.CtxIn, in)
	}
	return c
}

func TestChainPipesOutputToInput(t *testing.T) {
	var ran []string
	chain := cor.NewBaseChain("pipe")
	chain.AddCommand(newAppend("a", "-a", false, &ran)).AddCommand(newAppend("b", "-b", false, &ran))

	c := newContext(context.Background(), "x")
	chain.Execute(c)

	assert.False(t, c.HasErrors())
	assert.Equal(t, []string{"a", "b"}, ran)
	assert.Equal(t, "x-a-b", c.Get(cor.CtxIn))
	assert.Nil(t, c.Get(cor.CtxOut))
	assert.Equal(t, []string{"a", "b"}, chain.Commands())
}

func TestChainStopsOnFailure(t *testing.T) {
	var ran []string
	chain := cor.NewBaseChain("stop")
	chain.AddCommand(newAppend("a", "-a", true, &ran)).AddCommand(newAppend("b", "-b", false, &ran))

	c := newContext(context.Background(), "x")
	chain.Execute(c)

	assert.Equal(t, []string{"a"}, ran)
	err := cor.Err(c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a: boom")
}

func TestChainContinueOnFailure(t *testing.T) {
	var ran []string
	chain := cor.NewBaseChain("continue")
	chain.ContinueOnFailure(true)
	chain.AddCommand(newAppend("a", "-a", true, &ran)).AddCommand(newAppend("b", "-b", false, &ran))

	c := newContext(context.Background(), "x")
	chain.Execute(c)

	assert.Equal(t, []string{"a", "b"}, ran)
	assert.Len(t, c.GetErrors(), 1)
}

func TestChainSkipsCommandWithoutInput(t *testing.T) {
	var ran []string
	chain := cor.NewBaseChain("skip")
	chain.AddCommand(newAppend("a", "-a", false, &ran))

	c := newContext(context.Background(), nil)
	chain.Execute(c)

	assert.Empty(t, ran)
	assert.False(t, c.HasErrors())
}

func TestChainHonorsCancellation(t *testing.T) {
	var ran []string
	chain := cor.NewBaseChain("cancel")
	chain.AddCommand(newAppend("a", "-a", false, &ran))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := newContext(ctx, "x")
	chain.Execute(c)

	assert.Empty(t, ran)
	assert.ErrorIs(t, cor.Err(c), context.Canceled)
	assert.Equal(t, ctx, c.GetContext())
}

func TestErrIsStableAndNilOnSuccess(t *testing.T) {
	c := newContext(context.Background(), nil)
	assert.NoError(t, cor.Err(c))

	c.AddError("zeta", errors.New("z"))
	c.AddError("alpha", errors.New("a"))
	assert.Equal(t, "alpha: a\nzeta: z", cor.Err(c).Error())
}

func TestGetAsAndHasAll(t *testing.T) {
	c := newContext(context.Background(), nil)
	c.Add("n", 3).Add("s", "v")

	n, ok := cor.GetAs[int](c, "n")
	assert.True(t, ok)
	assert.Equal(t, 3, n)

	_, ok = cor.GetAs[string](c, "n")
	assert.False(t, ok)

	assert.True(t, cor.HasAll(c, "n", "s"))
	assert.False(t, cor.HasAll(c, "n", "missing"))
}

func TestCloseDropsValues(t *testing.T) {
	c := newContext(context.Background(), "payload")
	c.AddError("step", errors.New("boom"))
	c.Close()

	assert.Nil(t, c.Get(cor.CtxIn))
	assert.True(t, c.HasErrors())
}
