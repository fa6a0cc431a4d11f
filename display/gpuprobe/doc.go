// Package gpuprobe detects a usable GPU adapter and, when one is
// found, registers the "gpu" display backend.
//
// The probe opens no device: it only asks the Vulkan HAL to enumerate
// adapters, which is a cheap yes/no capability signal. Builds tagged
// nogpu compile a stub that always reports no GPU.
package gpuprobe
