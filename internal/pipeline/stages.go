package pipeline

import (
	"runtime"
	"strconv"

	"sceneforge/internal/scene"
	"sceneforge/internal/stageexec"
	"sceneforge/internal/toolkit"
)

func (p *Pipeline) extractInvocation(layout scene.Layout, videoPath string) stageexec.Invocation {
	return stageexec.Invocation{
		Stage:  StageExtract,
		Binary: p.tools.FFmpeg,
		Args: []string{
			"-i", videoPath,
			"-qscale:v", strconv.Itoa(p.cfg.Extract.QScale),
			layout.FramePattern(),
		},
		Env: p.tools.Environ(),
	}
}

func (p *Pipeline) featuresInvocation(layout scene.Layout) stageexec.Invocation {
	return stageexec.Invocation{
		Stage:  StageFeatures,
		Binary: p.tools.Colmap,
		Args: []string{
			"feature_extractor",
			"--database_path", layout.DatabasePath,
			"--image_path", layout.ImagesDir,
			"--ImageReader.single_camera", boolArg(p.cfg.Features.SingleCamera),
			"--SiftExtraction.use_gpu", boolArg(p.cfg.Features.UseGPU),
			"--SiftExtraction.max_image_size", strconv.Itoa(p.cfg.Features.MaxImageSize),
		},
		Env: p.tools.Environ(),
	}
}

func (p *Pipeline) matchInvocation(layout scene.Layout) stageexec.Invocation {
	return stageexec.Invocation{
		Stage:  StageMatch,
		Binary: p.tools.Colmap,
		Args: []string{
			"sequential_matcher",
			"--database_path", layout.DatabasePath,
			"--SequentialMatching.overlap", strconv.Itoa(p.cfg.Matching.Overlap),
		},
		Env: p.tools.Environ(),
	}
}

func (p *Pipeline) mapperInvocation(layout scene.Layout) stageexec.Invocation {
	args := []string{
		"mapper",
		"--database_path", layout.DatabasePath,
		"--image_path", layout.ImagesDir,
		"--output_path", layout.SparseDir,
	}
	if p.tools.Engine == toolkit.EngineColmap {
		threads := p.cfg.Mapper.Threads
		if threads <= 0 {
			threads = runtime.NumCPU()
		}
		args = append(args, "--Mapper.num_threads", strconv.Itoa(threads))
	}
	return stageexec.Invocation{
		Stage:  StageMapper,
		Binary: p.tools.Mapper,
		Args:   args,
		Env:    p.tools.Environ(),
	}
}

// exportInvocations converts the binary model to TXT twice: in place next
// to the binary model, and flattened to the sparse root where downstream
// consumers auto-detect text output.
func (p *Pipeline) exportInvocations(layout scene.Layout) []stageexec.Invocation {
	convert := func(outputPath string) stageexec.Invocation {
		return stageexec.Invocation{
			Stage:  StageExport,
			Binary: p.tools.Colmap,
			Args: []string{
				"model_converter",
				"--input_path", layout.ModelDir(),
				"--output_path", outputPath,
				"--output_type", "TXT",
			},
			Env:   p.tools.Environ(),
			Quiet: true,
		}
	}
	return []stageexec.Invocation{
		convert(layout.ModelDir()),
		convert(layout.SparseDir),
	}
}

func boolArg(value bool) string {
	if value {
		return "1"
	}
	return "0"
}
