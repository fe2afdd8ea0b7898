package chains

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/promptchain/internal/prompts"
	"github.com/JaimeStill/promptchain/pkg/query"
	"github.com/JaimeStill/promptchain/pkg/repository"
)

var versionProjection = query.
	NewProjectionMap("public", "versions", "v").
	Project("id", "ID").
	Project("chain_id", "ChainID").
	Project("version", "Version").
	Project("base_prompt", "BasePrompt").
	Project("negative_prompt", "NegativePrompt").
	Project("modules", "Modules").
	Project("params", "Params").
	Project("created_at", "CreatedAt")

var versionSort = query.SortField{Field: "Version"}

// The latest version is the highest version number, never the newest timestamp.
const chainSelect = `
	SELECT
		c.id, c.name, c.description, c.tags, c.preview_image, c.created_at, c.updated_at,
		lv.id, lv.version, lv.base_prompt, lv.negative_prompt, lv.modules, lv.params, lv.created_at
	FROM public.chains c
	LEFT JOIN LATERAL (
		SELECT id, version, base_prompt, negative_prompt, modules, params, created_at
		FROM public.versions
		WHERE chain_id = c.id
		ORDER BY version DESC
		LIMIT 1
	) lv ON true`

const (
	listChainsQuery = chainSelect + `
	ORDER BY c.updated_at DESC`

	findChainQuery = chainSelect + `
	WHERE c.id = $1`
)

func scanChain(s repository.Scanner) (Chain, error) {
	var (
		c       Chain
		tags    string
		preview sql.NullString

		vID        uuid.NullUUID
		vNumber    sql.NullInt64
		vBase      sql.NullString
		vNegative  sql.NullString
		vModules   sql.NullString
		vParams    sql.NullString
		vCreatedAt sql.NullTime
	)

	err := s.Scan(
		&c.ID,
		&c.Name,
		&c.Description,
		&tags,
		&preview,
		&c.CreatedAt,
		&c.UpdatedAt,
		&vID,
		&vNumber,
		&vBase,
		&vNegative,
		&vModules,
		&vParams,
		&vCreatedAt,
	)
	if err != nil {
		return Chain{}, err
	}

	if c.Tags, err = decodeList[string]("tags", tags); err != nil {
		return Chain{}, err
	}
	if preview.Valid {
		c.PreviewImage = &preview.String
	}

	if !vID.Valid {
		return c, nil
	}

	v, err := decodeVersion(
		vID.UUID, c.ID, int(vNumber.Int64),
		vBase.String, vNegative.String,
		vModules.String, vParams.String,
		vCreatedAt.Time,
	)
	if err != nil {
		return Chain{}, err
	}
	c.LatestVersion = &v

	return c, nil
}

func scanVersion(s repository.Scanner) (Version, error) {
	var (
		id, chainID    uuid.UUID
		number         int
		base, negative string
		modules        string
		params         string
		createdAt      time.Time
	)

	err := s.Scan(
		&id,
		&chainID,
		&number,
		&base,
		&negative,
		&modules,
		&params,
		&createdAt,
	)
	if err != nil {
		return Version{}, err
	}

	return decodeVersion(id, chainID, number, base, negative, modules, params, createdAt)
}

func decodeVersion(
	id, chainID uuid.UUID,
	number int,
	base, negative, modules, params string,
	createdAt time.Time,
) (Version, error) {
	v := Version{
		ID:             id,
		ChainID:        chainID,
		Version:        number,
		BasePrompt:     base,
		NegativePrompt: negative,
		CreatedAt:      createdAt,
	}

	var err error
	if v.Modules, err = decodeList[prompts.Module]("modules", modules); err != nil {
		return Version{}, err
	}
	if v.Params, err = decodeParams(params); err != nil {
		return Version{}, err
	}

	return v, nil
}
