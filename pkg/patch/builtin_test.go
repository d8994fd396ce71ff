package patch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const headerBefore = `import React from 'react';
import { useLanguage, useProgram } from '../context';
import strings from './strings';

export default function Header() {
  const { language } = useLanguage();
  const { program } = useProgram();
  return (
    <header lang={language}>
      <h1>
          {program === "Jordan" ? strings.jordan : strings.iset}
      </h1>
    </header>
  );
}
`

const headerAfter = `import React from 'react';
import { useLanguage } from '../context';
import strings from './strings';

export default function Header() {
  const { language } = useLanguage();
  return (
    <header lang={language}>
      <h1>
          {strings.iset}
      </h1>
    </header>
  );
}
`

func TestHeaderProgramToggle(t *testing.T) {
	def := HeaderProgramToggle()
	assert.Equal(t, HeaderPath, def.Path)
	require.Len(t, def.Rules, 3)
	require.NoError(t, def.Validate())
}

func TestHeaderProgramToggle_Apply(t *testing.T) {
	ctx := context.Background()
	path := writeTarget(t, headerBefore)

	res, err := ApplyPatch(ctx, HeaderProgramToggleAt(path))
	require.NoError(t, err)
	assert.Equal(t, headerAfter, readTarget(t, path))
	assert.True(t, res.Replacement.WasModified)
	assert.Equal(t, 3, res.Replacement.ReplacementCount)

	// a second run finds nothing left to change
	res, err = ApplyPatch(ctx, HeaderProgramToggleAt(path))
	require.NoError(t, err)
	assert.Equal(t, headerAfter, readTarget(t, path))
	assert.False(t, res.Replacement.WasModified)
	assert.Zero(t, res.Replacement.ReplacementCount)
}
